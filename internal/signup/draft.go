package signup

import "strings"

const (
	FieldEmail    = "email"
	FieldName     = "name"
	FieldPassword = "password"
)

// Draft holds the unsaved form values. It is a value type; edits return a new Draft.
type Draft struct {
	Email    string `json:"email" form:"email"`
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
}

// WithField returns a copy of d with a single field replaced. Unknown field names return d unchanged.
func (d Draft) WithField(field, value string) Draft {
	switch field {
	case FieldEmail:
		d.Email = value
	case FieldName:
		d.Name = value
	case FieldPassword:
		d.Password = value
	}
	return d
}

// MissingFields lists the required fields that are blank, in form order.
func (d Draft) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.Email) == "" {
		missing = append(missing, FieldEmail)
	}
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, FieldName)
	}
	if d.Password == "" {
		missing = append(missing, FieldPassword)
	}
	return missing
}

// Redacted is the draft as it may be re-rendered or logged.
func (d Draft) Redacted() Draft {
	d.Password = ""
	return d
}

// User is the account record returned by the registration endpoint.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
