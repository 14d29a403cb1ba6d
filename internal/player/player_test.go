package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlayerStatus(t *testing.T) {
	p := NewPlayer("p1", nil)
	assert.Equal(t, StatusConnected, p.Status())

	before := p.LastSeen()
	time.Sleep(time.Millisecond)
	p.MarkDisconnected()

	assert.Equal(t, StatusDisconnected, p.Status())
	assert.True(t, p.LastSeen().After(before))
}
