package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taglme/typist/typing"
)

func TestStatusBoardCounts(t *testing.T) {
	var out bytes.Buffer
	sb := NewStatusBoard(&out, newTestLogManager(t))

	for _, s := range []typing.Status{
		typing.StatusTyping, typing.StatusPaused, typing.StatusTyping, typing.StatusReady,
		typing.StatusTyping, typing.StatusError,
	} {
		sb.OnStateChange(s)
	}

	summary := sb.Summary()
	assert.Equal(t, typing.StatusError, summary.Status)
	assert.Equal(t, 2, summary.Started, "resume is not a new job")
	assert.Equal(t, 1, summary.Finished)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, out.String(), "PAUSED")
	assert.Contains(t, out.String(), "ERROR")
}

func TestStatusBoardDisplay(t *testing.T) {
	var out bytes.Buffer
	lm := newTestLogManager(t)
	sb := NewStatusBoard(&out, lm)
	params := typing.NewParams()
	params.SetWPM(120)

	sb.DisplayCurrentStatus(params, DefaultConfig())

	assert.Contains(t, out.String(), "READY")
	assert.Contains(t, out.String(), "120 wpm, temperature 50, pause 50")
	assert.Contains(t, out.String(), "CommandOrControl+Alt+V")
	assert.Contains(t, out.String(), "typist.log")
}
