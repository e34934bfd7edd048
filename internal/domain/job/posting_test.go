package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	tp, err := ParseType("full-time")
	require.NoError(t, err)
	assert.Equal(t, TypeFullTime, tp)

	_, err = ParseType("gig")
	assert.Error(t, err)

	c, err := ParseCategory("design")
	require.NoError(t, err)
	assert.Equal(t, CategoryDesign, c)

	_, err = ParseCategory("")
	assert.Error(t, err)

	_, err = ParseApprovalStatus("rejected")
	assert.Error(t, err)
}

func TestAcceptsApplications(t *testing.T) {
	p := Posting{Approval: ApprovalPending, Status: StatusOpen}
	assert.False(t, p.AcceptsApplications())

	p.Approval = ApprovalApproved
	assert.True(t, p.AcceptsApplications())

	p.Status = StatusClosed
	assert.False(t, p.AcceptsApplications())
}
