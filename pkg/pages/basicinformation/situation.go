package basicinformation

import (
	"fmt"
	"slices"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/pages/internal/formbody"
)

var situationLabels = map[string]string{
	"riskManagement":      "Risk management and public protection",
	"residencyManagement": "Residency management",
	"bailAssessment":      "Bail assessment for a community penalty",
	"bailSentence":        "Bail placement for a sentenced individual",
}

const situationQuestion = "Which of the following options best describes the situation?"

// Situation is only reachable for community-order and bail sentence types;
// its available options depend on the sentence-type answer.
type Situation struct {
	situation    string
	sentenceType string
	options      []string
}

// NewSituation constructs the page. The sentence-type answer is a
// precondition: its absence means out-of-order navigation and fails with a
// SessionDataError.
func NewSituation(body map[string]any, artifact *domain.Artifact, _ domain.PageContext) (domain.Page, error) {
	var b struct {
		Situation string `mapstructure:"situation"`
	}
	if err := formbody.Decode(body, &b); err != nil {
		return nil, err
	}

	answer, err := artifact.GetRequiredAnswer(TaskID, PageSentenceType, "sentenceType")
	if err != nil {
		return nil, err
	}
	sentenceType := fmt.Sprintf("%v", answer)

	options, err := situationsForSentenceType(sentenceType)
	if err != nil {
		return nil, err
	}

	return &Situation{
		situation:    b.Situation,
		sentenceType: sentenceType,
		options:      options,
	}, nil
}

// situationsForSentenceType maps a sentence type to its situation options.
// An unrecognized sentence type is a design defect and fails fast.
func situationsForSentenceType(sentenceType string) ([]string, error) {
	switch sentenceType {
	case "communityOrder":
		return []string{"riskManagement", "residencyManagement"}, nil
	case "bailPlacement":
		return []string{"bailAssessment", "bailSentence"}, nil
	default:
		return nil, &domain.UnmatchedBranchError{
			PageID: PageSituation,
			Field:  "sentenceType",
			Value:  sentenceType,
		}
	}
}

func (p *Situation) Name() string { return PageSituation }

func (p *Situation) Body() map[string]any {
	return map[string]any{"situation": p.situation}
}

// Options returns the situation choices valid for the sentence type, for
// the view layer to render.
func (p *Situation) Options() []string {
	return p.options
}

func (p *Situation) Errors() map[string]string {
	errs := map[string]string{}
	if p.situation == "" {
		errs["situation"] = "You must choose a situation"
	} else if !slices.Contains(p.options, p.situation) {
		errs["situation"] = "You must choose a valid situation"
	}
	return errs
}

func (p *Situation) Next() (string, error) {
	return PageReleaseDate, nil
}

func (p *Situation) Previous() (string, error) {
	return PageSentenceType, nil
}

func (p *Situation) Response() map[string]string {
	return map[string]string{
		situationQuestion: situationLabels[p.situation],
	}
}
