// Package oasysimport implements the oasys-import task: selecting which
// sections of the person's OASys assessment to bring into the application.
// Its page is the one in the journey that needs reference data fetched
// before it can render, so it implements ports.Initializer.
package oasysimport

import (
	"context"
	"errors"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/pages/internal/formbody"
	"github.com/probationforms/formflow/pkg/ports"
	"github.com/probationforms/formflow/pkg/registry"
)

// TaskID is the slug of the oasys-import task.
const TaskID = "oasys-import"

// PageOptionalSections is the task's only page.
const PageOptionalSections = "optional-oasys-sections"

// Task returns the declarative registration for the oasys-import task.
func Task() registry.Task {
	return registry.Task{
		ID:            TaskID,
		Title:         "Choose sections of OASys to import",
		Prerequisites: []string{"type-of-ap"},
		Pages: []registry.PageDef{
			{ID: PageOptionalSections, New: NewOptionalOasysSections},
		},
	}
}

// OptionalOasysSections lets the caseworker pick optional OASys sections.
// The selectable sections come from the OASys integration; when the person
// has no OASys record the page substitutes an empty dataset and flags the
// fetch as unsuccessful so the journey can continue with manual entry.
type OptionalOasysSections struct {
	needsLinkedToReoffending []int
	otherNeeds               []int

	crn          string
	sections     *domain.OasysSections
	oasysSuccess bool
}

func NewOptionalOasysSections(body map[string]any, artifact *domain.Artifact, _ domain.PageContext) (domain.Page, error) {
	var b struct {
		NeedsLinkedToReoffending []int `mapstructure:"needsLinkedToReoffending"`
		OtherNeeds               []int `mapstructure:"otherNeeds"`
	}
	if err := formbody.Decode(body, &b); err != nil {
		return nil, err
	}

	return &OptionalOasysSections{
		needsLinkedToReoffending: b.NeedsLinkedToReoffending,
		otherNeeds:               b.OtherNeeds,
		crn:                      artifact.CRN,
	}, nil
}

// Initialize fetches the person's OASys sections. An OasysNotFoundError is
// absorbed into the fallback dataset; any other failure propagates.
func (p *OptionalOasysSections) Initialize(ctx context.Context, token string, services ports.DataServices) error {
	sections, err := services.Oasys.OasysSections(ctx, token, p.crn, p.needsLinkedToReoffending)
	if err != nil {
		var notFound *domain.OasysNotFoundError
		if errors.As(err, &notFound) {
			p.sections = domain.EmptyOasysSections()
			p.oasysSuccess = false
			return nil
		}
		return err
	}

	p.sections = sections
	p.oasysSuccess = true
	return nil
}

func (p *OptionalOasysSections) Name() string { return PageOptionalSections }

func (p *OptionalOasysSections) Body() map[string]any {
	return map[string]any{
		"needsLinkedToReoffending": p.needsLinkedToReoffending,
		"otherNeeds":               p.otherNeeds,
	}
}

// Sections returns the fetched (or fallback) assessment slice for rendering.
func (p *OptionalOasysSections) Sections() *domain.OasysSections {
	return p.sections
}

// OasysSuccess reports whether the OASys fetch found a record.
func (p *OptionalOasysSections) OasysSuccess() bool {
	return p.oasysSuccess
}

// Errors never reports anything: both selections are optional.
func (p *OptionalOasysSections) Errors() map[string]string {
	return map[string]string{}
}

func (p *OptionalOasysSections) Next() (string, error) {
	return "", nil
}

func (p *OptionalOasysSections) Previous() (string, error) {
	return "", nil
}

func (p *OptionalOasysSections) Response() map[string]string {
	response := map[string]string{}
	if len(p.needsLinkedToReoffending) > 0 {
		response["Needs linked to reoffending"] = formatSections(p.needsLinkedToReoffending)
	}
	if len(p.otherNeeds) > 0 {
		response["Other needs"] = formatSections(p.otherNeeds)
	}
	return response
}
