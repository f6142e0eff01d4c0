// Package typeofap implements the type-of-AP task: a single page choosing
// between a standard AP, a PIPE and an ESAP. It may only be started once
// basic information is complete.
package typeofap

import (
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/pages/internal/formbody"
	"github.com/probationforms/formflow/pkg/registry"
)

// TaskID is the slug of the type-of-ap task.
const TaskID = "type-of-ap"

// PageApType is the task's only page.
const PageApType = "ap-type"

var apTypeLabels = map[string]string{
	"standard": "Standard AP",
	"pipe":     "Psychologically Informed Planned Environment (PIPE)",
	"esap":     "Enhanced Security AP (ESAP)",
}

const apTypeQuestion = "Which type of AP does the person require?"

// Task returns the declarative registration for the type-of-ap task.
func Task() registry.Task {
	return registry.Task{
		ID:            TaskID,
		Title:         "Type of AP required",
		Prerequisites: []string{"basic-information"},
		Pages: []registry.PageDef{
			{ID: PageApType, New: NewApType},
		},
	}
}

// ApType asks which kind of premises the person needs.
type ApType struct {
	apType string
}

func NewApType(body map[string]any, _ *domain.Artifact, _ domain.PageContext) (domain.Page, error) {
	var b struct {
		Type string `mapstructure:"type"`
	}
	if err := formbody.Decode(body, &b); err != nil {
		return nil, err
	}
	return &ApType{apType: b.Type}, nil
}

func (p *ApType) Name() string { return PageApType }

func (p *ApType) Body() map[string]any {
	return map[string]any{"type": p.apType}
}

func (p *ApType) Errors() map[string]string {
	errs := map[string]string{}
	if _, ok := apTypeLabels[p.apType]; !ok {
		errs["type"] = "You must specify the type of AP required"
	}
	return errs
}

func (p *ApType) Next() (string, error) {
	return "", nil
}

func (p *ApType) Previous() (string, error) {
	return "", nil
}

func (p *ApType) Response() map[string]string {
	return map[string]string{
		apTypeQuestion: apTypeLabels[p.apType],
	}
}
