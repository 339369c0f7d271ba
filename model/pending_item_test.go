package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPriority(t *testing.T) {
	assert.True(t, IsValidPriority(PriorityLow))
	assert.True(t, IsValidPriority(PriorityMedium))
	assert.True(t, IsValidPriority(PriorityHigh))
	// Empty defaults to medium at creation time
	assert.True(t, IsValidPriority(""))

	assert.False(t, IsValidPriority("urgent"))
	assert.False(t, IsValidPriority("MEDIUM"))
}
