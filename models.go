package frigocheck

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UserID is the backend identifier for a user. The backend emits it as
// a JSON number; the client treats it as an opaque string.
type UserID string

// UnmarshalJSON accepts both numeric and string encodings.
func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id is neither string nor number: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

func (id UserID) String() string {
	return string(id)
}

// IsZero reports whether no identifier is present.
func (id UserID) IsZero() bool {
	return id == ""
}

// User is the resolved identity record fetched from the backend.
type User struct {
	ID        UserID `json:"id,omitempty"`
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
	BirthDay  string `json:"birth_day,omitempty"`
}

// Merge applies non-empty fields onto a copy of the user. Used for the
// optimistic local merge after a successful profile update.
func (u User) Merge(fields map[string]any) User {
	for key, val := range fields {
		s, ok := val.(string)
		if !ok {
			continue
		}
		switch key {
		case "firstname":
			u.Firstname = s
		case "lastname":
			u.Lastname = s
		case "email":
			u.Email = s
		case "birth_day":
			u.BirthDay = s
		}
	}
	return u
}
