package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestSlogHandler(t *testing.T) {
	logger, h := NewTestLogger()

	logger.With("component", "mail").Info("sent", "to", "a@b.c")
	logger.Warn("plain")

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "mail", entries[0]["component"])
	assert.Equal(t, "a@b.c", entries[0]["to"])
	assert.NotContains(t, entries[1], "component", "attrs do not leak to the parent logger")

	assert.Len(t, h.Find("plain"), 1)
	assert.Empty(t, h.Find("missing"))

	h.Clear()
	assert.Empty(t, h.Entries())
}

func TestSkipUnlessIntegration(t *testing.T) {
	t.Setenv(IntegrationEnvVar, "")
	assert.False(t, IsIntegrationTestEnvironment())

	t.Setenv(IntegrationEnvVar, "1")
	assert.True(t, IsIntegrationTestEnvironment())

	ran := false
	t.Run("not skipped", func(t *testing.T) {
		SkipUnlessIntegration(t)
		ran = true
	})
	assert.True(t, ran)
}
