package domain

// Flash is the short-term state a controller carries across the
// redirect-after-validation-failure round trip: the raw user input to
// redisplay and the messages to show inline. The engine treats it as an
// opaque input; how it is transported (cookie, session, header) is the
// controller's concern.
type Flash struct {
	Errors    map[string]string
	UserInput map[string]any
}

// Request describes one show or update of a page within a journey.
type Request struct {
	// Token authenticates calls to the persistence and data-services
	// collaborators.
	Token string

	// ArtifactID identifies the application or assessment being edited.
	ArtifactID string

	TaskID string
	PageID string

	// From is the page the user arrived from, for context-dependent
	// back navigation. Optional.
	From string

	// Body is the raw posted body for an update. Nil for a show.
	Body map[string]any

	// Flash restores invalid input after a failed validation. Nil unless
	// redisplaying.
	Flash *Flash
}

// PageView is what a show flow hands back for rendering.
type PageView struct {
	TaskID   string
	Page     Page
	Artifact *Artifact

	// Errors holds flash-carried validation messages to render inline.
	Errors map[string]string
}

// UpdateResult is the outcome of a successful update flow.
type UpdateResult struct {
	// Next is the slug of the page to redirect to, or "" for the tasklist.
	Next string

	// Artifact is the persisted artifact with the new answers applied.
	Artifact *Artifact
}
