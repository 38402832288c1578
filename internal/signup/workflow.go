package signup

import (
	"context"
	"errors"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
)

const SignInPath = "/sign-in"

var (
	ErrAlreadySubmitting = errors.New("submission already in progress")
	ErrMissingFields     = errors.New("required fields missing")
)

type Registrar interface {
	Register(ctx context.Context, draft Draft) Result
}

type Notifier interface {
	Notify(message string)
}

type Navigator interface {
	Navigate(path string)
}

// State is the submit state of a form view.
type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// Form is what a form view renders: the draft, the submit state and the alert text.
type Form struct {
	Draft Draft
	State State
	Alert string
}

// Loading reports whether the loading overlay is visible.
func (f Form) Loading() bool { return f.State == Submitting }

// Outcome is the result of one Submit call.
type Outcome struct {
	Form   Form
	Result Result
	// Err is ErrAlreadySubmitting or ErrMissingFields when no request was issued.
	Err error
}

// Observer is told about every state transition. Optional.
type Observer func(key string, state State)

// Workflow runs form submissions against a Registrar and reports through
// a Notifier and a Navigator.
type Workflow struct {
	Registrar Registrar
	Notifier  Notifier
	Navigator Navigator
	Guard     Guard
	Observer  Observer
	// Timeout bounds each registrar call when positive. It must be shorter
	// than the Guard's lock lifetime.
	Timeout time.Duration
}

// Submit performs at most one registration call for draft. key identifies the
// form view (the session); a second Submit for the same key while the first is
// outstanding is refused with ErrAlreadySubmitting.
func (w *Workflow) Submit(ctx context.Context, key string, draft Draft) (out Outcome) {
	out.Form = Form{Draft: draft, State: Idle}

	if missing := draft.MissingFields(); len(missing) > 0 {
		out.Form.Alert = RequiredMessage
		out.Err = ErrMissingFields
		return out
	}

	token, ok := w.Guard.Acquire(key)
	if !ok {
		fiberlog.Warnf("signup: rejected re-entrant submission for %s", key)
		out.Form.State = Submitting
		out.Form.Alert = BusyMessage
		out.Err = ErrAlreadySubmitting
		return out
	}
	w.transition(key, Submitting)
	defer func() {
		w.Guard.Release(key, token)
		w.transition(key, Idle)
	}()

	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}

	result := w.Registrar.Register(ctx, draft)
	out.Result = result
	out.Form.Alert = AlertFor(result)

	if _, ok := result.(Registered); ok {
		fiberlog.Infof("signup: registered %s", draft.Email)
		w.Notifier.Notify(SuccessMessage)
		w.Navigator.Navigate(SignInPath)
		return out
	}

	fiberlog.Infof("signup: registration of %s ended with %s", draft.Email, result.Kind())
	return out
}

// GoToSignIn is the "Zaloguj się" link.
func (w *Workflow) GoToSignIn() {
	w.Navigator.Navigate(SignInPath)
}

func (w *Workflow) transition(key string, s State) {
	if w.Observer != nil {
		w.Observer(key, s)
	}
}
