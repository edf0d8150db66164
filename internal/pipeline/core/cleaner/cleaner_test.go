package cleaner_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usage-metrics-service/internal/pipeline/core/cleaner"
	"usage-metrics-service/internal/pipeline/core/domain"
)

func f(v float64) *float64 { return &v }

func TestCleanUsers(t *testing.T) {
	c := cleaner.New(cleaner.Options{})

	users, stats := c.CleanUsers([]domain.RawUser{
		{ID: "u1", Created: "2024-01-15", Title: "Associate"},
		{ID: "", Created: "2024-01-15", Title: "Partner"},
		{ID: "u2", Created: "not a date", Title: "  "},
		{ID: "u1", Created: "2024-02-01", Title: "Partner"},
		{ID: " u3 ", Created: "2024-03-04T10:11:12Z", Title: "Partner"},
	})

	require.Len(t, users, 3)
	assert.Equal(t, 5, stats.Input)
	assert.Equal(t, 3, stats.Kept)
	assert.Equal(t, 1, stats.Rejected[cleaner.ReasonMissingID])
	assert.Equal(t, 1, stats.Rejected[cleaner.ReasonDuplicateID])

	assert.Equal(t, "u1", users[0].ID)
	require.NotNil(t, users[0].SignupDate)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *users[0].SignupDate)

	assert.Nil(t, users[1].SignupDate, "unparsable signup stays absent")
	assert.Equal(t, domain.UnknownTitle, users[1].Title)

	assert.Equal(t, "u3", users[2].ID)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), *users[2].SignupDate)
}

func TestCleanUsers_KnownTitles(t *testing.T) {
	c := cleaner.New(cleaner.Options{KnownTitles: []string{"Associate", "Partner"}})

	users, _ := c.CleanUsers([]domain.RawUser{
		{ID: "u1", Title: "partner"},
		{ID: "u2", Title: "Wizard"},
	})

	require.Len(t, users, 2)
	assert.Equal(t, "Partner", users[0].Title)
	assert.Equal(t, domain.UnknownTitle, users[1].Title)
}

func TestCleanFirms_Categories(t *testing.T) {
	c := cleaner.New(cleaner.Options{})

	tests := []struct {
		size, arr float64
		wantSize  domain.SizeCategory
		wantARR   domain.ARRCategory
	}{
		{99, 99, domain.SizeSmall, domain.ARRLow},
		{100, 100, domain.SizeMedium, domain.ARRMedium},
		{500, 300, domain.SizeMedium, domain.ARRMedium},
		{501, 300.5, domain.SizeLarge, domain.ARRHigh},
		{0, 0, domain.SizeSmall, domain.ARRLow},
	}

	for _, tt := range tests {
		firms, _ := c.CleanFirms([]domain.RawFirm{{ID: "f", FirmSize: f(tt.size), ARRInThousands: f(tt.arr)}})
		require.Len(t, firms, 1)
		assert.Equal(t, tt.wantSize, firms[0].SizeCategory, "size %v", tt.size)
		assert.Equal(t, tt.wantARR, firms[0].ARRCategory, "arr %v", tt.arr)
	}
}

func TestCleanFirms_RejectsAndUnknowns(t *testing.T) {
	c := cleaner.New(cleaner.Options{})

	firms, stats := c.CleanFirms([]domain.RawFirm{
		{ID: ""},
		{ID: "f1", Created: ""},
	})

	require.Len(t, firms, 1)
	assert.Equal(t, 1, stats.Rejected[cleaner.ReasonMissingID])
	assert.Nil(t, firms[0].CreatedDate)
	assert.Equal(t, domain.SizeUnknown, firms[0].SizeCategory)
	assert.Equal(t, domain.ARRUnknown, firms[0].ARRCategory)
}

func TestCleanFirms_UnknownNeverFallsThroughToTopBucket(t *testing.T) {
	c := cleaner.New(cleaner.Options{})

	firms, _ := c.CleanFirms([]domain.RawFirm{
		{ID: "f1", FirmSize: nil, ARRInThousands: f(math.NaN())},
		{ID: "f2", FirmSize: f(math.Inf(1)), ARRInThousands: nil},
		{ID: "f3", FirmSize: f(0), ARRInThousands: f(0)},
	})

	require.Len(t, firms, 3)
	for _, firm := range firms[:2] {
		assert.Equal(t, domain.SizeUnknown, firm.SizeCategory, firm.ID)
		assert.Equal(t, domain.ARRUnknown, firm.ARRCategory, firm.ID)
	}
	assert.Equal(t, domain.SizeSmall, firms[2].SizeCategory)
	assert.Equal(t, domain.ARRLow, firms[2].ARRCategory)
}

func TestCleanEvents(t *testing.T) {
	c := cleaner.New(cleaner.Options{})

	events, stats := c.CleanEvents([]domain.RawEvent{
		{Created: "2024-01-20 10:00:00", FirmID: "f1", UserID: "u1", EventType: "assistant", NumDocs: f(3), FeedbackScore: f(5)},
		{Created: "2024-01-20", FirmID: "", UserID: "u1"},
		{Created: "2024-01-20", FirmID: "f1", UserID: ""},
		{Created: "", FirmID: "f1", UserID: "u1"},
		{Created: "yesterday", FirmID: "f1", UserID: "u1"},
		{Created: "2024-01-21", FirmID: "f1", UserID: "u1", EventType: "Chat", NumDocs: f(0), FeedbackScore: f(7)},
		{Created: "2024-01-22", FirmID: "f1", UserID: "u1", EventType: " VAULT ", NumDocs: f(-4), FeedbackScore: f(0.5)},
		{Created: "2024-01-23", FirmID: "f1", UserID: "u1", EventType: "WORKFLOW"},
	})

	require.Len(t, events, 4)
	assert.Equal(t, 8, stats.Input)
	assert.Equal(t, 4, stats.Kept)
	assert.Equal(t, 4, stats.RejectedTotal())
	assert.Equal(t, 1, stats.Rejected[cleaner.ReasonMissingFirmID])
	assert.Equal(t, 1, stats.Rejected[cleaner.ReasonMissingUserID])
	assert.Equal(t, 1, stats.Rejected[cleaner.ReasonMissingTimestamp])
	assert.Equal(t, 1, stats.Rejected[cleaner.ReasonBadTimestamp])

	assert.Equal(t, domain.EventAssistant, events[0].Type)
	assert.Equal(t, int64(3), events[0].NumDocs)
	require.NotNil(t, events[0].Feedback)
	assert.Equal(t, 5.0, *events[0].Feedback)

	assert.Equal(t, domain.EventOther, events[1].Type)
	assert.Equal(t, int64(1), events[1].NumDocs)
	assert.Nil(t, events[1].Feedback)

	assert.Equal(t, domain.EventVault, events[2].Type)
	assert.Equal(t, int64(1), events[2].NumDocs)
	assert.Nil(t, events[2].Feedback)

	assert.Equal(t, domain.EventWorkflow, events[3].Type)
	assert.Equal(t, int64(1), events[3].NumDocs, "missing doc count defaults to 1")
}

func TestValidFeedback_Bounds(t *testing.T) {
	assert.NotNil(t, cleaner.ValidFeedback(f(1)))
	assert.NotNil(t, cleaner.ValidFeedback(f(5)))
	assert.Nil(t, cleaner.ValidFeedback(f(0.99)))
	assert.Nil(t, cleaner.ValidFeedback(f(5.01)))
	assert.Nil(t, cleaner.ValidFeedback(nil))
}

func TestParseTime_Layouts(t *testing.T) {
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-01-02", "1/2/2024", "2024-01-02T00:00:00Z", "2024-01-02 00:00:00"} {
		got, ok := cleaner.ParseTime(in)
		require.True(t, ok, in)
		assert.True(t, want.Equal(got), in)
	}

	_, ok := cleaner.ParseTime("02.01.2024")
	assert.False(t, ok)
}
