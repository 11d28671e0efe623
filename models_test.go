package frigocheck_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	frigocheck "github.com/frigocheck/go-frigocheck"
)

func TestUserIDUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"numeric id", `{"id":42}`, "42"},
		{"string id", `{"id":"42"}`, "42"},
		{"null id", `{"id":null}`, ""},
		{"absent id", `{}`, ""},
		{"large numeric id", `{"id":9007199254740993}`, "9007199254740993"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user frigocheck.User
			require.NoError(t, json.Unmarshal([]byte(tt.json), &user))
			assert.Equal(t, tt.want, user.ID.String())
			assert.Equal(t, tt.want == "", user.ID.IsZero())
		})
	}

	t.Run("rejects non-scalar ids", func(t *testing.T) {
		var user frigocheck.User
		assert.Error(t, json.Unmarshal([]byte(`{"id":{"nested":true}}`), &user))
	})
}

func TestUserMerge(t *testing.T) {
	user := frigocheck.User{
		ID:        "7",
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Email:     "ada@example.com",
	}

	merged := user.Merge(map[string]any{
		"firstname": "Grace",
		"email":     "grace@example.com",
		"ignored":   "value",
		"birth_day": "1990-12-10",
	})

	assert.Equal(t, "Grace", merged.Firstname)
	assert.Equal(t, "Lovelace", merged.Lastname)
	assert.Equal(t, "grace@example.com", merged.Email)
	assert.Equal(t, "1990-12-10", merged.BirthDay)
	assert.Equal(t, "7", merged.ID.String())

	// Merge works on a copy.
	assert.Equal(t, "Ada", user.Firstname)
}

func TestUserMergeSkipsNonStringValues(t *testing.T) {
	user := frigocheck.User{Firstname: "Ada"}

	merged := user.Merge(map[string]any{"firstname": 42})

	assert.Equal(t, "Ada", merged.Firstname)
}
