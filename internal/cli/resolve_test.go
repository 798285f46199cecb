package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchID(t *testing.T) {
	ids := []string{
		"aaa11111-0000",
		"aaa22222-0000",
		"bbb33333-0000",
	}

	got, err := matchID("task", ids, "bbb33333-0000")
	require.NoError(t, err)
	assert.Equal(t, "bbb33333-0000", got)

	got, err = matchID("task", ids, "bbb")
	require.NoError(t, err)
	assert.Equal(t, "bbb33333-0000", got)

	_, err = matchID("task", ids, "aaa")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = matchID("task", ids, "zzz")
	assert.ErrorContains(t, err, "not found")

	_, err = matchID("task", ids, "")
	assert.ErrorContains(t, err, "required")
}
