package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimpse-search/glimpse/internal/summary"
)

func TestRegistryPutGet(t *testing.T) {
	reg := NewSummaryRegistry(time.Minute)
	defer reg.Close()

	fut := summary.NewFuture()
	id := reg.Put(fut)
	require.NotEmpty(t, id)

	got, ok := reg.Get(id)
	require.True(t, ok)
	assert.Same(t, fut, got)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryUnknownID(t *testing.T) {
	reg := NewSummaryRegistry(time.Minute)
	defer reg.Close()

	_, ok := reg.Get("nope")
	assert.False(t, ok)
}

func TestRegistryExpiry(t *testing.T) {
	reg := NewSummaryRegistry(10 * time.Millisecond)
	defer reg.Close()

	id := reg.Put(summary.NewFuture())
	time.Sleep(25 * time.Millisecond)

	_, ok := reg.Get(id)
	assert.False(t, ok, "expired handles are gone on lookup even before the janitor runs")
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryDistinctIDs(t *testing.T) {
	reg := NewSummaryRegistry(time.Minute)
	defer reg.Close()

	a := reg.Put(summary.NewFuture())
	b := reg.Put(summary.NewFuture())
	assert.NotEqual(t, a, b)
}
