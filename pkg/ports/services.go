package ports

import (
	"context"

	"github.com/probationforms/formflow/pkg/domain"
)

// PersonService looks up custody data for a person on probation.
type PersonService interface {
	PrisonCaseNotes(ctx context.Context, token, crn string) ([]domain.PrisonCaseNote, error)
}

// OasysService fetches offender-assessment sections. Implementations return
// *domain.OasysNotFoundError when the person has no OASys record.
type OasysService interface {
	OasysSections(ctx context.Context, token, crn string, selectedSections []int) (*domain.OasysSections, error)
}

// DataServices bundles the read-only lookups available to page
// initialization, injected as a single value so individual pages can declare
// exactly which sub-service they need.
type DataServices struct {
	Person PersonService
	Oasys  OasysService
}

// Initializer is implemented by pages that must fetch supplementary
// reference data before they can render or validate. The lifecycle engine
// calls Initialize after construction and before any validation or
// persistence; it is one of the engine's only two suspension points.
type Initializer interface {
	Initialize(ctx context.Context, token string, services DataServices) error
}
