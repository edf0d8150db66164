package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEvents(t *testing.T) {
	in := "CREATED,FIRM_ID,USER_ID,EVENT_TYPE,NUM_DOCS,FEEDBACK_SCORE\n" +
		"2024-01-03 09:00:00,f1,u1,ASSISTANT,3,5\n" +
		"2024-01-04 09:00:00,f1,u2,VAULT,,\n" +
		"2024-01-05 09:00:00, f2 ,u3,WORKFLOW,n/a,4.5\n"

	events, err := ReadEvents(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "u1", events[0].UserID)
	require.NotNil(t, events[0].NumDocs)
	assert.Equal(t, 3.0, *events[0].NumDocs)
	assert.Equal(t, 5.0, *events[0].FeedbackScore)

	assert.Nil(t, events[1].NumDocs)
	assert.Nil(t, events[1].FeedbackScore)

	assert.Equal(t, "f2", events[2].FirmID)
	assert.Nil(t, events[2].NumDocs, "non-numeric cell reads as missing")
	assert.Equal(t, 4.5, *events[2].FeedbackScore)
}

func TestReadUsers_HeaderCaseAndOrder(t *testing.T) {
	in := "\ufefftitle,id,created,extra\nAssociate,u1,2024-01-02,x\n"

	users, err := ReadUsers(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, "2024-01-02", users[0].Created)
	assert.Equal(t, "Associate", users[0].Title)
}

func TestReadUsers_StrayQuotesKeepRows(t *testing.T) {
	in := "ID,CREATED,TITLE\n" +
		"u1,2024-01-02,Associate\n" +
		"u2,2024-01-02,Counsel \"Senior\"\n" +
		"u3,2024-01-03,\"Partner\"x\n" +
		"u4,2024-01-04,Paralegal\n"

	users, err := ReadUsers(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, users, 4)

	assert.Equal(t, `Counsel "Senior"`, users[1].Title)
	assert.Equal(t, "u3", users[2].ID)
	assert.Equal(t, "u4", users[3].ID)
	assert.Equal(t, "Paralegal", users[3].Title)
}

func TestReadFirms_MissingColumn(t *testing.T) {
	_, err := ReadFirms(strings.NewReader("CREATED,FIRM_SIZE\n2024-01-01,10\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestReadFirms_Empty(t *testing.T) {
	firms, err := ReadFirms(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, firms)
}

func TestSource_Load(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	src := NewSource(
		write("users.csv", "ID,CREATED,TITLE\nu1,2024-01-02,Associate\n"),
		write("firms.csv", "ID,CREATED,FIRM_SIZE,ARR_IN_THOUSANDS\nf1,2023-01-01,120,250\n"),
		write("events.csv", "CREATED,FIRM_ID,USER_ID,EVENT_TYPE,NUM_DOCS,FEEDBACK_SCORE\n2024-01-03,f1,u1,ASSISTANT,1,\n"),
	)

	raw, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, raw.Users, 1)
	assert.Len(t, raw.Firms, 1)
	assert.Len(t, raw.Events, 1)
	assert.Equal(t, 250.0, *raw.Firms[0].ARRInThousands)
}

func TestSource_LoadMissingFile(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "nope.csv"), "", "")
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
