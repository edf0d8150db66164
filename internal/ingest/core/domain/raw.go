package domain

import "time"

// Raw rows are stored as received. Cleaning happens later in the pipeline,
// so nothing here is validated beyond shape.

type RawUser struct {
	ID         string
	Created    string
	Title      string
	DedupeKey  string
	IngestedAt time.Time
}

type RawFirm struct {
	ID             string
	Created        string
	FirmSize       *float64
	ARRInThousands *float64
	DedupeKey      string
	IngestedAt     time.Time
}

type RawEvent struct {
	Created       string
	FirmID        string
	UserID        string
	EventType     string
	NumDocs       *float64
	FeedbackScore *float64
	DedupeKey     string
	IngestedAt    time.Time
}
