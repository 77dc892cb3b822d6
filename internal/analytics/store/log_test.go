package store_test

import (
	"context"
	"testing"

	"github.com/serroba/link-tracker/internal/analytics/store"
	"github.com/serroba/link-tracker/internal/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog_SaveClick(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := store.NewLog(zap.New(core))

	event := &tracking.ClickEvent{
		Timestamp:   "3/5/2026, 1:04:09 PM",
		ClientIP:    "127.0.0.1",
		UserAgent:   "TestAgent/1.0",
		Referrer:    "https://referrer.com",
		UTMCampaign: "launch",
	}

	err := sink.SaveClick(context.Background(), event)

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "127.0.0.1", fields["client_ip"])
	assert.Equal(t, "https://referrer.com", fields["referrer"])
	assert.Equal(t, "launch", fields["utm_campaign"])
}
