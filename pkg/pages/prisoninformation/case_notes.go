// Package prisoninformation implements the prison-information task:
// choosing which of the person's prison case notes to attach to the
// application. The selectable notes come from the prison record, fetched
// during page initialization.
package prisoninformation

import (
	"context"
	"fmt"
	"strings"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/pages/internal/formbody"
	"github.com/probationforms/formflow/pkg/ports"
	"github.com/probationforms/formflow/pkg/registry"
)

// TaskID is the slug of the prison-information task.
const TaskID = "prison-information"

// PageCaseNotes is the task's only page.
const PageCaseNotes = "case-notes"

const selectedCaseNotesQuestion = "Selected prison case notes"

// Task returns the declarative registration for the prison-information task.
func Task() registry.Task {
	return registry.Task{
		ID:            TaskID,
		Title:         "Prison information",
		Prerequisites: []string{"basic-information"},
		Pages: []registry.PageDef{
			{ID: PageCaseNotes, New: NewCaseNotes},
		},
	}
}

// CaseNotes lets the caseworker attach prison case notes to the
// application. Selection is optional; a person recently sentenced may have
// no notes at all.
type CaseNotes struct {
	selectedCaseNotes []string
	moreDetail        string

	crn       string
	available []domain.PrisonCaseNote
}

func NewCaseNotes(body map[string]any, artifact *domain.Artifact, _ domain.PageContext) (domain.Page, error) {
	var b struct {
		SelectedCaseNotes []string `mapstructure:"selectedCaseNotes"`
		MoreDetail        string   `mapstructure:"moreDetail"`
	}
	if err := formbody.Decode(body, &b); err != nil {
		return nil, err
	}

	return &CaseNotes{
		selectedCaseNotes: b.SelectedCaseNotes,
		moreDetail:        b.MoreDetail,
		crn:               artifact.CRN,
	}, nil
}

// Initialize fetches the person's prison case notes so the page can render
// the selectable list and validate the selection against it.
func (p *CaseNotes) Initialize(ctx context.Context, token string, services ports.DataServices) error {
	notes, err := services.Person.PrisonCaseNotes(ctx, token, p.crn)
	if err != nil {
		return err
	}
	p.available = notes
	return nil
}

func (p *CaseNotes) Name() string { return PageCaseNotes }

func (p *CaseNotes) Body() map[string]any {
	return map[string]any{
		"selectedCaseNotes": p.selectedCaseNotes,
		"moreDetail":        p.moreDetail,
	}
}

// Available returns the case notes fetched for rendering.
func (p *CaseNotes) Available() []domain.PrisonCaseNote {
	return p.available
}

// Errors rejects selections naming notes that are not on the person's
// prison record.
func (p *CaseNotes) Errors() map[string]string {
	errs := map[string]string{}
	known := make(map[string]bool, len(p.available))
	for _, note := range p.available {
		known[note.ID] = true
	}
	for _, id := range p.selectedCaseNotes {
		if !known[id] {
			errs["selectedCaseNotes"] = "You must choose case notes from the person's prison record"
			break
		}
	}
	return errs
}

func (p *CaseNotes) Next() (string, error) {
	return "", nil
}

func (p *CaseNotes) Previous() (string, error) {
	return "", nil
}

func (p *CaseNotes) Response() map[string]string {
	response := map[string]string{}
	if len(p.selectedCaseNotes) > 0 {
		response[selectedCaseNotesQuestion] = p.describeSelection()
	}
	if p.moreDetail != "" {
		response["Additional detail"] = p.moreDetail
	}
	return response
}

// describeSelection renders the selected notes by type and date, falling
// back to the raw ID when a note is no longer on the record.
func (p *CaseNotes) describeSelection() string {
	byID := make(map[string]domain.PrisonCaseNote, len(p.available))
	for _, note := range p.available {
		byID[note.ID] = note
	}

	described := make([]string, 0, len(p.selectedCaseNotes))
	for _, id := range p.selectedCaseNotes {
		note, ok := byID[id]
		if !ok {
			described = append(described, id)
			continue
		}
		described = append(described, fmt.Sprintf("%s (%s)",
			note.Type, note.CreatedAt.Format("2 January 2006")))
	}
	return strings.Join(described, ", ")
}
