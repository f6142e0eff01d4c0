package basicinformation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/pages/basicinformation"
)

func TestSentenceType_Next(t *testing.T) {
	cases := map[string]string{
		"standardDeterminate": "release-date",
		"extendedDeterminate": "release-date",
		"ipp":                 "release-date",
		"life":                "release-date",
		"communityOrder":      "situation",
		"bailPlacement":       "situation",
	}

	for sentenceType, want := range cases {
		t.Run(sentenceType, func(t *testing.T) {
			page, err := basicinformation.NewSentenceType(
				map[string]any{"sentenceType": sentenceType},
				domain.NewArtifact("app-1"),
				domain.PageContext{},
			)
			require.NoError(t, err)

			next, err := page.Next()
			require.NoError(t, err)
			assert.Equal(t, want, next)
		})
	}
}

func TestSentenceType_Next_UnmatchedBranch(t *testing.T) {
	page, err := basicinformation.NewSentenceType(
		map[string]any{"sentenceType": "somethingElse"},
		domain.NewArtifact("app-1"),
		domain.PageContext{},
	)
	require.NoError(t, err)

	_, err = page.Next()
	var branchErr *domain.UnmatchedBranchError
	require.ErrorAs(t, err, &branchErr)
	assert.Equal(t, "sentenceType", branchErr.Field)
	assert.Equal(t, "somethingElse", branchErr.Value)
}

func TestSentenceType_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		page, err := basicinformation.NewSentenceType(map[string]any{}, domain.NewArtifact("app-1"), domain.PageContext{})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"sentenceType": "You must choose a sentence type"}, page.Errors())
	})

	t.Run("invalid", func(t *testing.T) {
		page, err := basicinformation.NewSentenceType(
			map[string]any{"sentenceType": "houseArrest"}, domain.NewArtifact("app-1"), domain.PageContext{})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"sentenceType": "You must choose a valid sentence type"}, page.Errors())
	})

	t.Run("valid", func(t *testing.T) {
		page, err := basicinformation.NewSentenceType(
			map[string]any{"sentenceType": "life"}, domain.NewArtifact("app-1"), domain.PageContext{})
		require.NoError(t, err)
		assert.Empty(t, page.Errors())
	})
}

func TestSentenceType_BodyAllowlist(t *testing.T) {
	page, err := basicinformation.NewSentenceType(
		map[string]any{"sentenceType": "life", "smuggled": "value"},
		domain.NewArtifact("app-1"),
		domain.PageContext{},
	)
	require.NoError(t, err)

	body := page.Body()
	assert.Equal(t, map[string]any{"sentenceType": "life"}, body)
	assert.NotContains(t, body, "smuggled")
}

func TestSentenceType_Response(t *testing.T) {
	page, err := basicinformation.NewSentenceType(
		map[string]any{"sentenceType": "bailPlacement"}, domain.NewArtifact("app-1"), domain.PageContext{})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Which of the following best describes the sentence type?": "Bail placement",
	}, page.Response())
}
