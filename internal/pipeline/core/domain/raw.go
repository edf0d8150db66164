package domain

// Raw rows exactly as the ingestion side hands them over. Every field is
// optional; the cleaner decides what survives.

type RawUser struct {
	ID      string
	Created string
	Title   string
}

type RawFirm struct {
	ID             string
	Created        string
	FirmSize       *float64
	ARRInThousands *float64
}

type RawEvent struct {
	Created       string
	FirmID        string
	UserID        string
	EventType     string
	NumDocs       *float64
	FeedbackScore *float64
}

type RawRecords struct {
	Users  []RawUser
	Firms  []RawFirm
	Events []RawEvent
}
