package login

import (
	"github.com/a-h/templ"

	"signupweb/internal/view"
)

// SignUp is the full registration page.
func SignUp(props SignUpProps) templ.Component {
	props.Form.Draft = props.Form.Draft.Redacted()
	return view.Component("login/sign_up", props)
}

// SignUpForm is the card body swapped in by htmx after a submit.
func SignUpForm(props SignUpProps) templ.Component {
	props.Form.Draft = props.Form.Draft.Redacted()
	return view.Component("login/_form", props)
}

func SignIn(props SignInProps) templ.Component {
	return view.Component("login/sign_in", props)
}
