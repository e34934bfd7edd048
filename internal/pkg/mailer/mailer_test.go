package mailer

import (
	"context"
	"testing"

	"jobboard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_LogOnlyWithoutHost(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	s, err := New(config.MailConfig{}, zap.New(core))
	require.NoError(t, err)
	require.IsType(t, &LogSender{}, s)

	require.NoError(t, s.Send(context.Background(), "a@example.com", "Hi", "body"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "a@example.com", logs.All()[0].ContextMap()["to"])
}

func TestLogSender_RequiresRecipient(t *testing.T) {
	err := NewLogSender(nil).Send(context.Background(), " ", "Hi", "body")
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestBuildMessage(t *testing.T) {
	_, err := buildMessage("no-reply@jobboard.local", "", "s", "b")
	assert.ErrorIs(t, err, ErrNoRecipient)

	_, err = buildMessage("no-reply@jobboard.local", "not an address", "s", "b")
	assert.Error(t, err)

	msg, err := buildMessage("no-reply@jobboard.local", "a@example.com", "Subject", "Body")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.GetGenHeader(mail.HeaderSubject))
}
