package domain

import "time"

// PrisonCaseNote is a single case note fetched for a person in custody.
type PrisonCaseNote struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	Note      string    `json:"note"`
}

// OasysQuestion is one answered question within an OASys section.
type OasysQuestion struct {
	Section int    `json:"section"`
	Label   string `json:"label"`
	Answer  string `json:"answer"`
}

// OasysSections is the slice of an offender assessment relevant to a
// placement application.
type OasysSections struct {
	AssessmentID             int             `json:"assessmentId"`
	AssessmentState          string          `json:"assessmentState"`
	NeedsLinkedToReoffending []OasysQuestion `json:"needsLinkedToReoffending"`
	NeedsNotLinkedToRisk     []OasysQuestion `json:"needsNotLinkedToRisk"`
}

// EmptyOasysSections is the fallback dataset substituted when the person has
// no OASys record, so the journey can continue with manual entry.
func EmptyOasysSections() *OasysSections {
	return &OasysSections{
		AssessmentState:          "Incomplete",
		NeedsLinkedToReoffending: []OasysQuestion{},
		NeedsNotLinkedToRisk:     []OasysQuestion{},
	}
}
