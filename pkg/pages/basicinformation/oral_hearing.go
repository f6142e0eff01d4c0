package basicinformation

import (
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/pages/internal/formbody"
)

// OralHearing closes the branch where the release date is not yet known.
type OralHearing struct {
	knowOralHearingDate string
	year                string
	month               string
	day                 string
	oralHearingDate     string
}

func NewOralHearing(body map[string]any, _ *domain.Artifact, _ domain.PageContext) (domain.Page, error) {
	var b struct {
		KnowOralHearingDate string `mapstructure:"knowOralHearingDate"`
		Year                string `mapstructure:"oralHearingDate-year"`
		Month               string `mapstructure:"oralHearingDate-month"`
		Day                 string `mapstructure:"oralHearingDate-day"`
	}
	if err := formbody.Decode(body, &b); err != nil {
		return nil, err
	}

	return &OralHearing{
		knowOralHearingDate: b.KnowOralHearingDate,
		year:                b.Year,
		month:               b.Month,
		day:                 b.Day,
		oralHearingDate:     isoDate(b.Year, b.Month, b.Day),
	}, nil
}

func (p *OralHearing) Name() string { return PageOralHearing }

func (p *OralHearing) Body() map[string]any {
	return map[string]any{
		"knowOralHearingDate":   p.knowOralHearingDate,
		"oralHearingDate-year":  p.year,
		"oralHearingDate-month": p.month,
		"oralHearingDate-day":   p.day,
		"oralHearingDate":       p.oralHearingDate,
	}
}

func (p *OralHearing) Errors() map[string]string {
	errs := map[string]string{}
	switch p.knowOralHearingDate {
	case "yes":
		if p.oralHearingDate == "" {
			errs["oralHearingDate"] = "You must specify the oral hearing date"
		} else if !validDate(p.oralHearingDate) {
			errs["oralHearingDate"] = "The oral hearing date must be a valid date"
		}
	case "no":
	default:
		errs["knowOralHearingDate"] = "You must specify if you know the oral hearing date"
	}
	return errs
}

func (p *OralHearing) Next() (string, error) {
	return "", nil
}

func (p *OralHearing) Previous() (string, error) {
	return PageReleaseDate, nil
}

func (p *OralHearing) Response() map[string]string {
	response := map[string]string{
		"Do you know the oral hearing date?": yesNo(p.knowOralHearingDate),
	}
	if p.knowOralHearingDate == "yes" {
		response["Oral hearing date"] = prettyDate(p.oralHearingDate)
	}
	return response
}
