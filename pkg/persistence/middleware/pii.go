package middleware

import (
	"context"
	"regexp"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/ports"
)

type piiMiddleware struct {
	next     ports.ManagedArtifactStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks answers whose field name
// matches any of the patterns before they reach the store. Masking is one
// way: a masked answer reads back as "***", so only use it for fields the
// journey never needs to redisplay.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.ManagedArtifactStore) ports.ManagedArtifactStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) mask(artifact *domain.Artifact) *domain.Artifact {
	// Work on a clone so the in-memory artifact the engine holds keeps
	// its plaintext answers.
	masked := &domain.Artifact{ID: artifact.ID, CRN: artifact.CRN, Data: domain.FormData{}}
	for taskID, pages := range artifact.Data {
		masked.Data[taskID] = make(map[string]map[string]any, len(pages))
		for pageID, body := range pages {
			masked.Data[taskID][pageID] = maskBody(body, m.patterns)
		}
	}
	return masked
}

func (m *piiMiddleware) Create(ctx context.Context, token string, artifact *domain.Artifact) error {
	return m.next.Create(ctx, token, m.mask(artifact))
}

func (m *piiMiddleware) Find(ctx context.Context, token, id string) (*domain.Artifact, error) {
	return m.next.Find(ctx, token, id)
}

func (m *piiMiddleware) Update(ctx context.Context, token string, artifact *domain.Artifact) (*domain.Artifact, error) {
	if _, err := m.next.Update(ctx, token, m.mask(artifact)); err != nil {
		return nil, err
	}
	return artifact, nil
}

func (m *piiMiddleware) Delete(ctx context.Context, token, id string) error {
	return m.next.Delete(ctx, token, id)
}

func (m *piiMiddleware) List(ctx context.Context, token string) ([]string, error) {
	return m.next.List(ctx, token)
}

// Helpers

func maskBody(body map[string]any, patterns []*regexp.Regexp) map[string]any {
	out := make(map[string]any, len(body))
	for k, v := range body {
		matched := false
		for _, p := range patterns {
			if p.MatchString(k) {
				out[k] = "***"
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if subMap, ok := v.(map[string]any); ok {
			out[k] = maskBody(subMap, patterns)
		} else {
			out[k] = v
		}
	}
	return out
}
