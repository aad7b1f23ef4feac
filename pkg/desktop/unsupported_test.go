//go:build !windows

package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewControllerWithoutCapability(t *testing.T) {
	c := NewController()
	assert.False(t, c.Supported())

	c.PinToDesktop(handleOf(99))
	c.RestorePinOnFocusLoss(handleOf(99))

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.CapabilityUnavailable)
	assert.Equal(t, int64(0), stats.CallFailed)
	assert.Equal(t, int64(0), stats.HandleUnavailable)

	assert.False(t, c.ApplyBackdrop(handleOf(99)))
}
