package oasysimport_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probationforms/formflow/internal/testutils"
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/pages/oasysimport"
)

func newPage(t *testing.T, body map[string]any, crn string) *oasysimport.OptionalOasysSections {
	t.Helper()

	artifact := domain.NewArtifact("app-1")
	artifact.CRN = crn

	page, err := oasysimport.NewOptionalOasysSections(body, artifact, domain.PageContext{})
	require.NoError(t, err)
	return page.(*oasysimport.OptionalOasysSections)
}

func TestOptionalOasysSections_Initialize(t *testing.T) {
	oasys := &testutils.FakeOasysService{
		Sections: map[string]*domain.OasysSections{
			"X320741": {
				AssessmentID:    1138,
				AssessmentState: "Completed",
				NeedsLinkedToReoffending: []domain.OasysQuestion{
					{Section: 3, Label: "Accommodation", Answer: "Settled"},
				},
			},
		},
	}

	page := newPage(t, map[string]any{"needsLinkedToReoffending": []any{"3"}}, "X320741")
	require.NoError(t, page.Initialize(context.Background(), "token", testutils.Services(oasys)))

	assert.True(t, page.OasysSuccess())
	assert.Equal(t, 1138, page.Sections().AssessmentID)
	assert.Equal(t, []string{"X320741"}, oasys.Calls)
}

func TestOptionalOasysSections_NotFoundFallback(t *testing.T) {
	page := newPage(t, map[string]any{}, "NO-RECORD")
	require.NoError(t, page.Initialize(context.Background(), "token", testutils.Services(nil)))

	assert.False(t, page.OasysSuccess())
	require.NotNil(t, page.Sections())
	assert.Equal(t, "Incomplete", page.Sections().AssessmentState)
	assert.Empty(t, page.Sections().NeedsLinkedToReoffending)
}

func TestOptionalOasysSections_OtherFailuresPropagate(t *testing.T) {
	boom := errors.New("oasys timeout")
	page := newPage(t, map[string]any{}, "X320741")

	err := page.Initialize(context.Background(), "token", testutils.Services(&testutils.FakeOasysService{Err: boom}))
	assert.ErrorIs(t, err, boom)
}

func TestOptionalOasysSections_BodyAndResponse(t *testing.T) {
	page := newPage(t, map[string]any{
		"needsLinkedToReoffending": []any{"3", "10"},
		"otherNeeds":               []any{"11"},
		"smuggled":                 "value",
	}, "X320741")

	assert.Equal(t, map[string]any{
		"needsLinkedToReoffending": []int{3, 10},
		"otherNeeds":               []int{11},
	}, page.Body())

	assert.Equal(t, map[string]string{
		"Needs linked to reoffending": "Section 3, Section 10",
		"Other needs":                 "Section 11",
	}, page.Response())

	assert.Empty(t, page.Errors())
}

func TestOptionalOasysSections_ResponseOmitsEmptySelections(t *testing.T) {
	page := newPage(t, map[string]any{}, "X320741")
	assert.Empty(t, page.Response())
}
