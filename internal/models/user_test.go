package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPublic(t *testing.T) {
	user := &User{
		ID:         7,
		ExternalID: "user_ext_7",
		Username:   "alice",
		Avatar:     "/a.png",
		Name:       "Alice",
		Surname:    "Anders",
		City:       "Lisbon",
	}

	public := user.Public()
	assert.Equal(t, uint(7), public.ID)
	assert.Equal(t, "alice", public.Username)
	assert.Equal(t, "/a.png", public.Avatar)
	assert.Equal(t, "Alice", public.Name)
	assert.Equal(t, "Anders", public.Surname)

	// The serialized form must not leak anything beyond the public subset.
	raw, err := json.Marshal(public)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "external_id")
	assert.NotContains(t, fields, "city")
	assert.Len(t, fields, 5)
}
