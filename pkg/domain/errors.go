package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrArtifactNotFound is returned by stores when an artifact ID is unknown.
var ErrArtifactNotFound = errors.New("artifact not found")

// UnknownPageError reports a (task, page) pair that is not registered.
// Controllers must map it to a "not found" response, never a fatal error.
type UnknownPageError struct {
	TaskID string
	PageID string
}

func (e *UnknownPageError) Error() string {
	return fmt.Sprintf("unknown page %q in task %q", e.PageID, e.TaskID)
}

// ValidationError carries the full field -> message mapping produced by a
// page's Errors(). It is always recoverable: the caller redisplays the same
// page with the messages and the preserved input.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed for: %s", strings.Join(fields, ", "))
}

// SessionDataError reports a required upstream answer that is absent.
// It is fatal for the current request: it indicates out-of-sequence
// navigation or a data-integrity gap, not user error.
type SessionDataError struct {
	TaskID string
	PageID string
	Key    string
}

func (e *SessionDataError) Error() string {
	return fmt.Sprintf("missing required answer %s/%s/%s", e.TaskID, e.PageID, e.Key)
}

// UnmatchedBranchError reports a discriminant value no navigation branch
// handles. An unhandled case is a design defect, so resolution fails fast
// instead of silently defaulting; the type is named so tests and callers can
// assert on it distinctly.
type UnmatchedBranchError struct {
	PageID string
	Field  string
	Value  any
}

func (e *UnmatchedBranchError) Error() string {
	return fmt.Sprintf("page %q has no branch for %s=%v", e.PageID, e.Field, e.Value)
}

// OasysNotFoundError reports that the OASys integration holds no record for
// the person. Pages catch it during Initialize and substitute a fallback
// dataset so the journey can continue with manual entry.
type OasysNotFoundError struct {
	CRN string
}

func (e *OasysNotFoundError) Error() string {
	return fmt.Sprintf("no OASys record found for CRN %q", e.CRN)
}
