package login

import "signupweb/internal/signup"

// SignUpProps is rendered by SignUp and SignUpForm.
type SignUpProps struct {
	Form signup.Form
}

// SignInProps is rendered by SignIn. Notice is the pending flash message.
type SignInProps struct {
	Notice string
}
