package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/meetsync/calendar/memory"
)

func TestMux(t *testing.T) {
	mux := NewMux()
	mem := memory.New()
	mux.Register("memory", mem)

	p, err := mux.Get("memory")
	require.NoError(t, err)
	assert.Same(t, mem, p)

	_, err = mux.Get("google")
	assert.EqualError(t, err, `calendar "google" is not implemented, available: memory`)
}
