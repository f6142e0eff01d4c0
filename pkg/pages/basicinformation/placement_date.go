package basicinformation

import (
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/pages/internal/formbody"
)

// PlacementDate closes the branch where the release date is known.
type PlacementDate struct {
	startDateSameAsReleaseDate string
	year                       string
	month                      string
	day                        string
	startDate                  string
}

func NewPlacementDate(body map[string]any, _ *domain.Artifact, _ domain.PageContext) (domain.Page, error) {
	var b struct {
		StartDateSameAsReleaseDate string `mapstructure:"startDateSameAsReleaseDate"`
		Year                       string `mapstructure:"startDate-year"`
		Month                      string `mapstructure:"startDate-month"`
		Day                        string `mapstructure:"startDate-day"`
	}
	if err := formbody.Decode(body, &b); err != nil {
		return nil, err
	}

	return &PlacementDate{
		startDateSameAsReleaseDate: b.StartDateSameAsReleaseDate,
		year:                       b.Year,
		month:                      b.Month,
		day:                        b.Day,
		startDate:                  isoDate(b.Year, b.Month, b.Day),
	}, nil
}

func (p *PlacementDate) Name() string { return PagePlacementDate }

func (p *PlacementDate) Body() map[string]any {
	return map[string]any{
		"startDateSameAsReleaseDate": p.startDateSameAsReleaseDate,
		"startDate-year":             p.year,
		"startDate-month":            p.month,
		"startDate-day":              p.day,
		"startDate":                  p.startDate,
	}
}

func (p *PlacementDate) Errors() map[string]string {
	errs := map[string]string{}
	switch p.startDateSameAsReleaseDate {
	case "yes":
	case "no":
		if p.startDate == "" {
			errs["startDate"] = "You must specify the placement start date"
		} else if !validDate(p.startDate) {
			errs["startDate"] = "The placement start date must be a valid date"
		}
	default:
		errs["startDateSameAsReleaseDate"] = "You must specify if the start date is the same as the release date"
	}
	return errs
}

func (p *PlacementDate) Next() (string, error) {
	return "", nil
}

func (p *PlacementDate) Previous() (string, error) {
	return PageReleaseDate, nil
}

func (p *PlacementDate) Response() map[string]string {
	response := map[string]string{
		"Is the start date the same as the release date?": yesNo(p.startDateSameAsReleaseDate),
	}
	if p.startDateSameAsReleaseDate == "no" {
		response["Placement start date"] = prettyDate(p.startDate)
	}
	return response
}
