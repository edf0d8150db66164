package fiber

// Raw rows are accepted as-is. Missing keys and bad timestamps are counted
// by the pipeline run, not rejected here.

type BulkUsersRequest struct {
	Users []rawUserItem `json:"users" validate:"required,dive"`
}

type rawUserItem struct {
	ID      string `json:"id" validate:"max=256"`
	Created string `json:"created" validate:"max=64"`
	Title   string `json:"title" validate:"max=256"`
}

type BulkFirmsRequest struct {
	Firms []rawFirmItem `json:"firms" validate:"required,dive"`
}

type rawFirmItem struct {
	ID             string   `json:"id" validate:"max=256"`
	Created        string   `json:"created" validate:"max=64"`
	FirmSize       *float64 `json:"firm_size"`
	ARRInThousands *float64 `json:"arr_in_thousands"`
}

type BulkEventsRequest struct {
	Events []rawEventItem `json:"events" validate:"required,dive"`
}

type rawEventItem struct {
	Created       string   `json:"created" validate:"max=64"`
	FirmID        string   `json:"firm_id" validate:"max=256"`
	UserID        string   `json:"user_id" validate:"max=256"`
	EventType     string   `json:"event_type" validate:"max=64"`
	NumDocs       *float64 `json:"num_docs"`
	FeedbackScore *float64 `json:"feedback_score"`
}

type BulkCreateResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_batch"`
	Message string `json:"message,omitempty" example:"batch is empty"`
}
