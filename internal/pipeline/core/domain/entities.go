package domain

import "time"

const UnknownTitle = "Unknown"

type User struct {
	ID         string
	SignupDate *time.Time // date at 00:00 UTC, nil when unparsable
	Title      string
}

type SizeCategory string

const (
	SizeSmall   SizeCategory = "Small"
	SizeMedium  SizeCategory = "Medium"
	SizeLarge   SizeCategory = "Large"
	SizeUnknown SizeCategory = "Unknown"
)

type ARRCategory string

const (
	ARRLow     ARRCategory = "Low"
	ARRMedium  ARRCategory = "Medium"
	ARRHigh    ARRCategory = "High"
	ARRUnknown ARRCategory = "Unknown"
)

type Firm struct {
	ID            string
	CreatedDate   *time.Time
	EmployeeCount int64
	ARRThousands  float64
	SizeCategory  SizeCategory
	ARRCategory   ARRCategory
}

type EventType string

const (
	EventAssistant EventType = "ASSISTANT"
	EventVault     EventType = "VAULT"
	EventWorkflow  EventType = "WORKFLOW"
	EventOther     EventType = "OTHER"
)

type Event struct {
	FirmID    string
	UserID    string
	Timestamp time.Time
	Type      EventType
	NumDocs   int64
	Feedback  *float64 // only set when within [1,5]
}

// Activity is an event joined to its user (required) and firm (optional),
// with the time buckets every engine groups on.
type Activity struct {
	Event

	UserTitle  string
	SignupDate time.Time
	Firm       *Firm

	Day             time.Time
	Week            time.Time // Monday
	Month           time.Time // first day of month
	DaysSinceSignup int
}
