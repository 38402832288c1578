package login

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signupweb/internal/signup"
)

func renderString(t *testing.T, c interface {
	Render(ctx context.Context, w io.Writer) error
}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

var draft = signup.Draft{Email: "jan@example.com", Name: "jan", Password: "secret1"}

func TestSignUp_Idle(t *testing.T) {
	out := renderString(t, SignUp(SignUpProps{Form: signup.Form{Draft: draft}}))

	assert.Contains(t, out, "<h2>Rejestracja</h2>")
	assert.Contains(t, out, `value="jan@example.com"`)
	assert.Contains(t, out, `value="jan"`)
	assert.NotContains(t, out, "secret1")
	assert.NotContains(t, out, `role="alert"`)
	assert.NotContains(t, out, `<div class="overlay" aria-busy="true">`)
	assert.Contains(t, out, `href="/sign-in"`)
	assert.Contains(t, out, "Zaloguj się")
}

func TestSignUpForm_AlertAndLoading(t *testing.T) {
	out := renderString(t, SignUpForm(SignUpProps{Form: signup.Form{
		Draft: draft,
		State: signup.Submitting,
		Alert: "Email already taken",
	}}))

	assert.Contains(t, out, `<div role="alert" class="alert alert-error"><span>Email already taken</span></div>`)
	assert.Contains(t, out, `<div class="overlay" aria-busy="true">`)
	assert.Contains(t, out, " disabled>Zarejestruj się</button>")
	assert.False(t, strings.Contains(out, "<html"), "partial must not include the layout")
}

func TestSignUpForm_EscapesAlert(t *testing.T) {
	out := renderString(t, SignUpForm(SignUpProps{Form: signup.Form{Alert: "<script>x</script>"}}))

	assert.Contains(t, out, "&lt;script&gt;x&lt;/script&gt;")
	assert.NotContains(t, out, "<script>x</script>")
}

func TestSignIn_Notice(t *testing.T) {
	out := renderString(t, SignIn(SignInProps{Notice: signup.SuccessMessage}))

	assert.Contains(t, out, "<h2>Logowanie</h2>")
	assert.Contains(t, out, "Zarejestrowano!")

	out = renderString(t, SignIn(SignInProps{}))
	assert.NotContains(t, out, `role="status"`)
}
