package constants

const (
	EnvDevelopment      = "development"
	EnvProduction       = "production"
	EnvTest             = "test"
	CsrfInputName       = "_csrf"
	CsrfHeaderName      = "X-CSRF-Token"
	CsrfTokenContextKey = "csrf.token"
	FlashSessionKey     = "flash.notice"
	SessionCookieName   = "signupweb_session_id"
	CsrfCookieName      = "signupweb_csrf"
	BackendHTTP         = "http"
	BackendCognito      = "cognito"
)
