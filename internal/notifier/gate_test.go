package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateDedup(t *testing.T) {
	t.Parallel()
	var g Gate
	assert.True(t, g.ShouldSend("m"))
	g.RecordSent("m")
	assert.False(t, g.ShouldSend("m"))
	assert.True(t, g.ShouldSend("other"))

	last, ok := g.Last()
	assert.True(t, ok)
	assert.Equal(t, "m", last)
}

func TestGateEmptyCandidateOnFreshGate(t *testing.T) {
	t.Parallel()
	var g Gate
	assert.True(t, g.ShouldSend(""), "unset state differs from every candidate")
	g.RecordSent("")
	assert.False(t, g.ShouldSend(""))
}

func TestGateRecordOverwritesAndReset(t *testing.T) {
	t.Parallel()
	var g Gate
	g.RecordSent("a")
	g.RecordSent("b")
	assert.True(t, g.ShouldSend("a"))
	assert.False(t, g.ShouldSend("b"))

	g.Reset()
	_, ok := g.Last()
	assert.False(t, ok)
	assert.True(t, g.ShouldSend("b"))
}
