package basicinformation

import (
	"fmt"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/pages/internal/formbody"
)

// ReleaseDate is reached from two entry points (sentence-type directly, or
// via situation), so its back link depends on the arrival context when one
// is supplied, and falls back to data-driven inference otherwise.
type ReleaseDate struct {
	knowReleaseDate string
	year            string
	month           string
	day             string
	releaseDate     string
	from            string
}

// NewReleaseDate constructs the page, assembling the date parts into an ISO
// date once, at construction.
func NewReleaseDate(body map[string]any, artifact *domain.Artifact, pctx domain.PageContext) (domain.Page, error) {
	var b struct {
		KnowReleaseDate string `mapstructure:"knowReleaseDate"`
		Year            string `mapstructure:"releaseDate-year"`
		Month           string `mapstructure:"releaseDate-month"`
		Day             string `mapstructure:"releaseDate-day"`
	}
	if err := formbody.Decode(body, &b); err != nil {
		return nil, err
	}

	from := pctx.From
	if from == "" {
		from = inferReleaseDateEntry(artifact)
	}

	return &ReleaseDate{
		knowReleaseDate: b.KnowReleaseDate,
		year:            b.Year,
		month:           b.Month,
		day:             b.Day,
		releaseDate:     isoDate(b.Year, b.Month, b.Day),
		from:            from,
	}, nil
}

// inferReleaseDateEntry derives the back target from the sentence type:
// community and bail orders route through the situation page.
func inferReleaseDateEntry(artifact *domain.Artifact) string {
	switch fmt.Sprintf("%v", artifact.GetAnswer(TaskID, PageSentenceType, "sentenceType")) {
	case "communityOrder", "bailPlacement":
		return PageSituation
	default:
		return PageSentenceType
	}
}

func (p *ReleaseDate) Name() string { return PageReleaseDate }

func (p *ReleaseDate) Body() map[string]any {
	return map[string]any{
		"knowReleaseDate":   p.knowReleaseDate,
		"releaseDate-year":  p.year,
		"releaseDate-month": p.month,
		"releaseDate-day":   p.day,
		"releaseDate":       p.releaseDate,
	}
}

func (p *ReleaseDate) Errors() map[string]string {
	errs := map[string]string{}
	switch p.knowReleaseDate {
	case "yes":
		if p.releaseDate == "" {
			errs["releaseDate"] = "You must specify the release date"
		} else if !validDate(p.releaseDate) {
			errs["releaseDate"] = "The release date must be a valid date"
		}
	case "no":
	default:
		errs["knowReleaseDate"] = "You must specify if you know the release date"
	}
	return errs
}

func (p *ReleaseDate) Next() (string, error) {
	switch p.knowReleaseDate {
	case "yes":
		return PagePlacementDate, nil
	case "no":
		return PageOralHearing, nil
	default:
		return "", &domain.UnmatchedBranchError{
			PageID: PageReleaseDate,
			Field:  "knowReleaseDate",
			Value:  p.knowReleaseDate,
		}
	}
}

func (p *ReleaseDate) Previous() (string, error) {
	return p.from, nil
}

func (p *ReleaseDate) Response() map[string]string {
	response := map[string]string{
		"Do you know the release date?": yesNo(p.knowReleaseDate),
	}
	if p.knowReleaseDate == "yes" {
		response["Release date"] = prettyDate(p.releaseDate)
	}
	return response
}

func yesNo(answer string) string {
	switch answer {
	case "yes":
		return "Yes"
	case "no":
		return "No"
	default:
		return ""
	}
}
