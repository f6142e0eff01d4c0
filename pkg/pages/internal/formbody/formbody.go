// Package formbody decodes raw request bodies into typed page bodies. This
// is the explicit normalize step applied once at page construction; pages
// never read the raw map after it.
package formbody

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode fills target from body using weakly-typed decoding, so form-style
// inputs ("3", 3, true) land in the declared field types. Fields without a
// mapstructure tag match are dropped, which is what enforces each page's
// body allowlist.
func Decode(body map[string]any, target any) error {
	if body == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("failed to build body decoder: %w", err)
	}
	if err := decoder.Decode(body); err != nil {
		return fmt.Errorf("failed to decode page body: %w", err)
	}
	return nil
}
