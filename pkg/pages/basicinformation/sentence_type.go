package basicinformation

import (
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/pages/internal/formbody"
)

var sentenceTypeLabels = map[string]string{
	"standardDeterminate": "Standard determinate custody",
	"extendedDeterminate": "Extended determinate custody",
	"communityOrder":      "Community Order or Suspended Sentence Order",
	"bailPlacement":       "Bail placement",
	"ipp":                 "Indeterminate Public Protection sentence",
	"life":                "Life sentence",
}

const sentenceTypeQuestion = "Which of the following best describes the sentence type?"

// SentenceType is the first page of the task. Its answer decides whether the
// situation page is reachable.
type SentenceType struct {
	sentenceType string
}

// NewSentenceType constructs the page from a candidate body.
func NewSentenceType(body map[string]any, _ *domain.Artifact, _ domain.PageContext) (domain.Page, error) {
	var b struct {
		SentenceType string `mapstructure:"sentenceType"`
	}
	if err := formbody.Decode(body, &b); err != nil {
		return nil, err
	}
	return &SentenceType{sentenceType: b.SentenceType}, nil
}

func (p *SentenceType) Name() string { return PageSentenceType }

func (p *SentenceType) Body() map[string]any {
	return map[string]any{"sentenceType": p.sentenceType}
}

func (p *SentenceType) Errors() map[string]string {
	errs := map[string]string{}
	if p.sentenceType == "" {
		errs["sentenceType"] = "You must choose a sentence type"
	} else if _, ok := sentenceTypeLabels[p.sentenceType]; !ok {
		errs["sentenceType"] = "You must choose a valid sentence type"
	}
	return errs
}

func (p *SentenceType) Next() (string, error) {
	switch p.sentenceType {
	case "standardDeterminate", "extendedDeterminate", "ipp", "life":
		return PageReleaseDate, nil
	case "communityOrder", "bailPlacement":
		return PageSituation, nil
	default:
		return "", &domain.UnmatchedBranchError{
			PageID: PageSentenceType,
			Field:  "sentenceType",
			Value:  p.sentenceType,
		}
	}
}

func (p *SentenceType) Previous() (string, error) {
	return "", nil
}

func (p *SentenceType) Response() map[string]string {
	return map[string]string{
		sentenceTypeQuestion: sentenceTypeLabels[p.sentenceType],
	}
}
