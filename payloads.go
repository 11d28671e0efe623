package frigocheck

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// RegisterRequest is the registration payload. BirthDay uses the
// backend's YYYY-MM-DD wire format.
type RegisterRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	BirthDay  string `json:"birth_day"`
}

// Validate will validate the payload
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Firstname, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Lastname, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.BirthDay, validation.Required, validation.Date("2006-01-02")),
	)
}

// ProfileUpdate is a partial update of the identity record. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Firstname *string
	Lastname  *string
	Email     *string
	BirthDay  *string
}

// Validate will validate the populated fields
func (p ProfileUpdate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, is.Email),
		validation.Field(&p.BirthDay, validation.Date("2006-01-02")),
	)
}

// IsEmpty reports whether no field is populated.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Firstname == nil && p.Lastname == nil && p.Email == nil && p.BirthDay == nil
}

// Fields returns the wire representation of the populated fields.
func (p ProfileUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if p.Firstname != nil {
		fields["firstname"] = *p.Firstname
	}
	if p.Lastname != nil {
		fields["lastname"] = *p.Lastname
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.BirthDay != nil {
		fields["birth_day"] = *p.BirthDay
	}
	return fields
}
