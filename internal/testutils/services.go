// Package testutils provides in-memory fakes for the data-services
// collaborators, shared by engine and page tests.
package testutils

import (
	"context"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/ports"
)

// FakePersonService serves canned case notes keyed by CRN.
type FakePersonService struct {
	CaseNotes map[string][]domain.PrisonCaseNote
	Err       error
}

func (f *FakePersonService) PrisonCaseNotes(ctx context.Context, token, crn string) ([]domain.PrisonCaseNote, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.CaseNotes[crn], nil
}

// FakeOasysService serves canned assessment sections keyed by CRN. CRNs
// without an entry yield an OasysNotFoundError, mirroring the integration.
type FakeOasysService struct {
	Sections map[string]*domain.OasysSections
	Err      error

	// Calls records the CRNs requested, for assertions.
	Calls []string
}

func (f *FakeOasysService) OasysSections(ctx context.Context, token, crn string, selected []int) (*domain.OasysSections, error) {
	f.Calls = append(f.Calls, crn)
	if f.Err != nil {
		return nil, f.Err
	}
	sections, ok := f.Sections[crn]
	if !ok {
		return nil, &domain.OasysNotFoundError{CRN: crn}
	}
	return sections, nil
}

// Services bundles the fakes into a ports.DataServices value.
func Services(oasys *FakeOasysService) ports.DataServices {
	if oasys == nil {
		oasys = &FakeOasysService{}
	}
	return ports.DataServices{
		Person: &FakePersonService{},
		Oasys:  oasys,
	}
}
