package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probationforms/formflow/pkg/domain"
)

func TestArtifact_SetAnswers_RoundTrip(t *testing.T) {
	artifact := domain.NewArtifact("app-1")
	body := map[string]any{
		"sentenceType": "bailPlacement",
		"note":         "remand",
	}

	updated := artifact.SetAnswers("basic-information", "sentence-type", body)

	for key, want := range body {
		assert.Equal(t, want, updated.GetAnswer("basic-information", "sentence-type", key))
	}

	// The receiver is untouched.
	assert.Nil(t, artifact.GetAnswer("basic-information", "sentence-type", "sentenceType"))
	assert.False(t, artifact.HasTask("basic-information"))
}

func TestArtifact_SetAnswers_PreservesSiblings(t *testing.T) {
	artifact := domain.NewArtifact("app-1").
		SetAnswers("basic-information", "sentence-type", map[string]any{"sentenceType": "communityOrder"}).
		SetAnswers("basic-information", "situation", map[string]any{"situation": "riskManagement"}).
		SetAnswers("type-of-ap", "ap-type", map[string]any{"type": "standard"})

	updated := artifact.SetAnswers("basic-information", "situation", map[string]any{"situation": "residencyManagement"})

	assert.Equal(t, "residencyManagement", updated.GetAnswer("basic-information", "situation", "situation"))
	assert.Equal(t, "communityOrder", updated.GetAnswer("basic-information", "sentence-type", "sentenceType"))
	assert.Equal(t, "standard", updated.GetAnswer("type-of-ap", "ap-type", "type"))

	// The original still holds the old answer.
	assert.Equal(t, "riskManagement", artifact.GetAnswer("basic-information", "situation", "situation"))
}

func TestArtifact_SetAnswers_CopiesTheBody(t *testing.T) {
	body := map[string]any{"sentenceType": "ipp"}
	updated := domain.NewArtifact("app-1").SetAnswers("basic-information", "sentence-type", body)

	body["sentenceType"] = "mutated"

	assert.Equal(t, "ipp", updated.GetAnswer("basic-information", "sentence-type", "sentenceType"))
}

func TestArtifact_GetAnswer_MissingChain(t *testing.T) {
	artifact := domain.NewArtifact("app-1")

	assert.Nil(t, artifact.GetAnswer("no-task", "no-page", "no-key"))

	artifact = artifact.SetAnswers("basic-information", "sentence-type", map[string]any{"sentenceType": "life"})
	assert.Nil(t, artifact.GetAnswer("basic-information", "sentence-type", "no-key"))
	assert.Nil(t, artifact.GetAnswer("basic-information", "no-page", "sentenceType"))
}

func TestArtifact_GetRequiredAnswer(t *testing.T) {
	artifact := domain.NewArtifact("app-1").
		SetAnswers("basic-information", "sentence-type", map[string]any{"sentenceType": "life"})

	value, err := artifact.GetRequiredAnswer("basic-information", "sentence-type", "sentenceType")
	require.NoError(t, err)
	assert.Equal(t, "life", value)

	_, err = artifact.GetRequiredAnswer("basic-information", "sentence-type", "missing")
	var sessionErr *domain.SessionDataError
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, "basic-information", sessionErr.TaskID)
	assert.Equal(t, "missing", sessionErr.Key)

	_, err = artifact.GetRequiredAnswer("unknown", "unknown", "unknown")
	assert.ErrorAs(t, err, &sessionErr)
}

func TestArtifact_JSONRoundTrip(t *testing.T) {
	artifact := domain.NewArtifact("app-1").
		SetAnswers("basic-information", "release-date", map[string]any{
			"knowReleaseDate": "yes",
			"releaseDate":     "2022-03-03",
		})
	artifact.CRN = "X320741"

	raw, err := json.Marshal(artifact)
	require.NoError(t, err)

	var decoded domain.Artifact
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "X320741", decoded.CRN)
	assert.Equal(t, "2022-03-03", decoded.GetAnswer("basic-information", "release-date", "releaseDate"))
}
