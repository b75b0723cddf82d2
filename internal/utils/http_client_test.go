package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_ReadyToUse(t *testing.T) {
	client := NewHTTPClient()
	require.NotNil(t, client)
	require.NotNil(t, client.Client)

	// Встроенный resty должен строить запросы без дополнительной настройки.
	assert.NotNil(t, client.R())
}

func TestNewHTTPClient_IndependentInstances(t *testing.T) {
	a, b := NewHTTPClient(), NewHTTPClient()
	assert.NotSame(t, a.Client, b.Client, "clients must not share connection state")
}
