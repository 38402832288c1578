package signup

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Result is the outcome of one registration call. The set of cases is closed:
// Registered, ValidationFailed, Rejected and TransportFailed.
type Result interface {
	result()
	// Kind is a stable short name, used for logs and the attempt log.
	Kind() string
}

type Registered struct {
	User User
}

// ValidationFailed carries a structured validation payload from the endpoint.
type ValidationFailed struct {
	Status  int
	Message string
	Fields  map[string][]string
}

// Rejected is a refusal carrying a plain message.
type Rejected struct {
	Status  int
	Message string
}

// TransportFailed covers everything where no usable answer came back.
type TransportFailed struct {
	Err error
}

func (Registered) result()       {}
func (ValidationFailed) result() {}
func (Rejected) result()         {}
func (TransportFailed) result()  {}

func (Registered) Kind() string       { return "registered" }
func (ValidationFailed) Kind() string { return "validation_failed" }
func (Rejected) Kind() string         { return "rejected" }
func (TransportFailed) Kind() string  { return "transport_failed" }

func (t TransportFailed) Error() string {
	if t.Err == nil {
		return "transport failed"
	}
	return t.Err.Error()
}

func (t TransportFailed) Unwrap() error { return t.Err }

const (
	SuccessMessage   = "Zarejestrowano!"
	TransportMessage = "Nie można połączyć się z serwerem. Spróbuj ponownie."
	RequiredMessage  = "Wypełnij wszystkie pola."
	BusyMessage      = "Rejestracja jest w toku."
)

// AlertFor renders the text shown in the error region for a result.
// Registered has no alert.
func AlertFor(r Result) string {
	switch r := r.(type) {
	case Registered:
		return ""
	case ValidationFailed:
		return validationAlert(r)
	case Rejected:
		if msg := strings.TrimSpace(r.Message); msg != "" {
			return msg
		}
		if text := http.StatusText(r.Status); text != "" {
			return text
		}
		return fmt.Sprintf("Rejestracja odrzucona (%d)", r.Status)
	case TransportFailed:
		return TransportMessage
	default:
		panic(fmt.Sprintf("signup: unhandled result %T", r))
	}
}

func validationAlert(v ValidationFailed) string {
	parts := make([]string, 0, len(v.Fields)+1)
	if msg := strings.TrimSpace(v.Message); msg != "" {
		parts = append(parts, msg)
	}

	fields := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		msgs := v.Fields[field]
		if len(msgs) == 0 {
			continue
		}
		parts = append(parts, field+": "+strings.Join(msgs, ", "))
	}

	if len(parts) == 0 {
		return http.StatusText(http.StatusUnprocessableEntity)
	}
	return strings.Join(parts, "; ")
}
