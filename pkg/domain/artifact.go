package domain

// FormData is the nested answer store attached to an Artifact:
// task ID -> page ID -> the allowlisted body persisted for that page.
// It is JSON round-trippable by construction.
type FormData map[string]map[string]map[string]any

// Artifact is the application or assessment record the journey collects
// answers into. The record itself is owned by the backing API; the engine
// only reads Data and proposes updates to it via SetAnswers.
type Artifact struct {
	ID   string   `json:"id"`
	CRN  string   `json:"crn,omitempty"`
	Data FormData `json:"data"`
}

// NewArtifact creates an empty artifact for a new journey.
func NewArtifact(id string) *Artifact {
	return &Artifact{ID: id, Data: FormData{}}
}

// PageBody returns the stored body for a task/page pair, or nil when the
// page has not been answered yet.
func (a *Artifact) PageBody(taskID, pageID string) map[string]any {
	if a == nil || a.Data == nil {
		return nil
	}
	pages, ok := a.Data[taskID]
	if !ok {
		return nil
	}
	body, ok := pages[pageID]
	if !ok {
		return nil
	}
	return body
}

// GetAnswer returns the stored value for a key, or nil when any link of the
// task/page/key chain is absent. It never fails; use GetRequiredAnswer when
// the answer is a precondition.
func (a *Artifact) GetAnswer(taskID, pageID, key string) any {
	body := a.PageBody(taskID, pageID)
	if body == nil {
		return nil
	}
	return body[key]
}

// GetRequiredAnswer returns the stored value for a key that an upstream page
// must have provided. A miss returns a *SessionDataError: it means either a
// broken skip path or direct out-of-order navigation, and masking it would
// let the journey proceed on inconsistent data.
func (a *Artifact) GetRequiredAnswer(taskID, pageID, key string) (any, error) {
	body := a.PageBody(taskID, pageID)
	if body == nil {
		return nil, &SessionDataError{TaskID: taskID, PageID: pageID, Key: key}
	}
	value, ok := body[key]
	if !ok || value == nil {
		return nil, &SessionDataError{TaskID: taskID, PageID: pageID, Key: key}
	}
	return value, nil
}

// HasPage reports whether the artifact holds an entry for the page.
func (a *Artifact) HasPage(taskID, pageID string) bool {
	return a.PageBody(taskID, pageID) != nil
}

// HasTask reports whether the artifact holds any entry for the task.
func (a *Artifact) HasTask(taskID string) bool {
	if a == nil || a.Data == nil {
		return false
	}
	return len(a.Data[taskID]) > 0
}

// SetAnswers returns a copy of the artifact with data[taskID][pageID]
// replaced by body. The receiver is never mutated and all sibling task and
// page entries are preserved; untouched bodies are shared structurally.
func (a *Artifact) SetAnswers(taskID, pageID string, body map[string]any) *Artifact {
	next := *a
	next.Data = make(FormData, len(a.Data)+1)
	for tid, pages := range a.Data {
		next.Data[tid] = pages
	}

	pages := make(map[string]map[string]any, len(a.Data[taskID])+1)
	for pid, pb := range a.Data[taskID] {
		pages[pid] = pb
	}

	stored := make(map[string]any, len(body))
	for k, v := range body {
		stored[k] = v
	}
	pages[pageID] = stored
	next.Data[taskID] = pages

	return &next
}
