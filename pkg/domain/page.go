package domain

// Page is the contract every wizard screen implements. A page instance is
// constructed fresh per request from the best-available candidate body (raw
// post, flash-restored input, or the body loaded from the artifact) and is
// never persisted itself; only its allowlisted Body() is written into the
// artifact.
type Page interface {
	// Name returns the page slug, unique within its task.
	Name() string

	// Body returns the validated, allowlisted answer payload. Keys outside
	// the page's declared body properties must never appear here.
	Body() map[string]any

	// Errors returns field -> user-facing message. An empty map means valid.
	// It must not fail: all validation failure is expressed in the mapping.
	Errors() map[string]string

	// Next returns the slug of the next page within the task, or "" to
	// signal end of task. It must be total over reachable answer
	// combinations; a genuinely unrecognized discriminant returns a
	// *UnmatchedBranchError.
	Next() (string, error)

	// Previous computes the back-navigation target, same shape as Next.
	Previous() (string, error)

	// Response maps human-readable question text to rendered answers for
	// check-your-answers summaries. Keys whose answer is not applicable
	// given other answers on the page are omitted.
	Response() map[string]string
}

// PageContext carries call-site information a constructor may need when
// data-driven inference is not enough, e.g. which page the user arrived
// from for a screen reachable through two different entry points.
type PageContext struct {
	From string
}
