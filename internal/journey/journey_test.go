package journey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probationforms/formflow/internal/journey"
	"github.com/probationforms/formflow/pkg/domain"
)

func TestRegistry_Builds(t *testing.T) {
	reg := journey.Registry()

	assert.Equal(t,
		[]string{"basic-information", "type-of-ap", "oasys-import", "prison-information"},
		reg.TaskOrder())

	sections := reg.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "before-you-start", sections[0].ID)
	assert.Equal(t, "risks-and-needs", sections[1].ID)
}

func TestRegistry_EveryDeclaredPageResolves(t *testing.T) {
	reg := journey.Registry()

	for _, taskID := range reg.TaskOrder() {
		pages, err := reg.PagesForTask(taskID)
		require.NoError(t, err)
		for _, def := range pages {
			page, err := reg.GetPage(taskID, def.ID)
			require.NoError(t, err)
			assert.Equal(t, def.ID, page.ID)
		}
	}
}

// Every page must construct from an empty body without failing, except
// those whose preconditions are upstream answers.
func TestRegistry_PagesConstructFromEmptyBodies(t *testing.T) {
	reg := journey.Registry()
	artifact := domain.NewArtifact("app-1").
		SetAnswers("basic-information", "sentence-type", map[string]any{"sentenceType": "communityOrder"})

	for _, taskID := range reg.TaskOrder() {
		pages, err := reg.PagesForTask(taskID)
		require.NoError(t, err)
		for _, def := range pages {
			page, err := def.New(map[string]any{}, artifact, domain.PageContext{})
			require.NoError(t, err, "constructing %s/%s", taskID, def.ID)
			assert.Equal(t, def.ID, page.Name())
			assert.NotNil(t, page.Errors())
		}
	}
}
