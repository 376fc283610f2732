package notify

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RetainsNotifications(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	hub.Notify("added to cart", SeveritySuccess)
	hub.Notify("checkout failed", SeverityError)

	recent := hub.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "added to cart", recent[0].Message)
	assert.Equal(t, SeveritySuccess, recent[0].Severity)
	assert.Equal(t, SeverityError, recent[1].Severity)
}

func TestHub_WindowIsBounded(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	for i := 0; i < recentLimit+10; i++ {
		hub.Notify(fmt.Sprintf("message %d", i), SeverityInfo)
	}

	recent := hub.Recent()
	require.Len(t, recent, recentLimit)
	// Oldest messages fell out of the window.
	assert.Equal(t, "message 10", recent[0].Message)
}

func TestHub_RecentReturnsCopy(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	hub.Notify("original", SeverityInfo)

	first := hub.Recent()
	first[0].Message = "mutated"

	assert.Equal(t, "original", hub.Recent()[0].Message)
}
