// Package basicinformation implements the pages of the basic-information
// task: sentence type, situation, release date, placement date and oral
// hearing. The task branches twice — the sentence type decides whether the
// situation page is shown, and knowing the release date decides between the
// placement-date and oral-hearing endings.
package basicinformation

import "github.com/probationforms/formflow/pkg/registry"

// TaskID is the slug of the basic-information task.
const TaskID = "basic-information"

// Page slugs within the task.
const (
	PageSentenceType  = "sentence-type"
	PageSituation     = "situation"
	PageReleaseDate   = "release-date"
	PagePlacementDate = "placement-date"
	PageOralHearing   = "oral-hearing"
)

// Task returns the declarative registration for the basic-information task.
func Task() registry.Task {
	return registry.Task{
		ID:    TaskID,
		Title: "Basic information",
		Pages: []registry.PageDef{
			{ID: PageSentenceType, New: NewSentenceType},
			{ID: PageSituation, New: NewSituation},
			{ID: PageReleaseDate, New: NewReleaseDate},
			{ID: PagePlacementDate, New: NewPlacementDate},
			{ID: PageOralHearing, New: NewOralHearing},
		},
	}
}
