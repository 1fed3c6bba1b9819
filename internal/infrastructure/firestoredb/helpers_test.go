package firestoredb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdates_SingleField(t *testing.T) {
	ups, err := buildUpdates(map[string]interface{}{"name": "Ana"})
	require.NoError(t, err)
	require.Len(t, ups, 1)
	assert.Equal(t, "name", ups[0].Path)
	assert.Equal(t, "Ana", ups[0].Value)
}

func TestBuildUpdates_MultipleFields_SortedByPath(t *testing.T) {
	updates := map[string]interface{}{
		"email":    "a@b.com",
		"name":     "Ana",
		"acquired": true,
	}
	// Call twice to verify determinism.
	ups1, err := buildUpdates(updates)
	require.NoError(t, err)
	ups2, err := buildUpdates(updates)
	require.NoError(t, err)

	assert.Equal(t, ups1, ups2)

	require.Len(t, ups1, 3)
	assert.Equal(t, "acquired", ups1[0].Path)
	assert.Equal(t, "email", ups1[1].Path)
	assert.Equal(t, "name", ups1[2].Path)
}

func TestBuildUpdates_EmptyMap_ReturnsError(t *testing.T) {
	_, err := buildUpdates(map[string]interface{}{})
	assert.ErrorContains(t, err, "no fields to update")
}
