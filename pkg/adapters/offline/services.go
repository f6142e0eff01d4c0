// Package offline provides data services for deployments without upstream
// integrations: the prison record has no case notes and every OASys lookup
// reports no record, so pages that fetch reference data fall back to manual
// entry instead of failing.
package offline

import (
	"context"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/ports"
)

type personService struct{}

func (personService) PrisonCaseNotes(ctx context.Context, token, crn string) ([]domain.PrisonCaseNote, error) {
	return nil, nil
}

type oasysService struct{}

func (oasysService) OasysSections(ctx context.Context, token, crn string, selected []int) (*domain.OasysSections, error) {
	return nil, &domain.OasysNotFoundError{CRN: crn}
}

// Services returns the no-integration data services.
func Services() ports.DataServices {
	return ports.DataServices{
		Person: personService{},
		Oasys:  oasysService{},
	}
}
