package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResponseStatus(t *testing.T) {
	for _, s := range []string{"interview", "shortlisted", "hired", "rejected"} {
		st, err := ParseResponseStatus(s)
		assert.NoError(t, err, s)
		assert.Equal(t, Status(s), st)
	}

	_, err := ParseResponseStatus("pending")
	assert.Error(t, err)

	_, err = ParseResponseStatus("ghosted")
	assert.Error(t, err)
}

func TestIsTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusInterview, true},
		{StatusPending, StatusRejected, true},
		{StatusInterview, StatusShortlisted, true},
		{StatusShortlisted, StatusInterview, true},
		{StatusInterview, StatusInterview, true},
		{StatusHired, StatusRejected, false},
		{StatusRejected, StatusInterview, false},
		{StatusInterview, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsTransitionAllowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestFinalStatusesHaveNoExits(t *testing.T) {
	for _, from := range []Status{StatusHired, StatusRejected} {
		for _, to := range []Status{StatusPending, StatusInterview, StatusShortlisted, StatusHired, StatusRejected} {
			assert.False(t, IsTransitionAllowed(from, to), "%s -> %s", from, to)
		}
	}
}
