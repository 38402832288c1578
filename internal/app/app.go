package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/postgres/v3"

	"signupweb/internal/config"
	"signupweb/internal/constants"
	"signupweb/internal/registration"
	"signupweb/internal/repo"
	"signupweb/internal/signup"
	"signupweb/internal/view"
	errorviews "signupweb/views/errors"
)

func New(config *config.Config) (*fiber.App, error) {
	fiberlog.Debugf("Starting app with config: env=%s backend=%s url=%s", config.Env, config.RegistrationBackend, config.RegistrationUrl)

	if config.CompileViews {
		set, err := view.New(view.Config{CompileOnRender: true, Path: "views"})
		if err != nil {
			return nil, err
		}
		view.Use(set)
	}

	registrar := config.Registrar
	if registrar == nil {
		var err error
		if registrar, err = NewRegistrar(context.Background(), config); err != nil {
			return nil, err
		}
	}

	attempts := config.Repo
	if attempts == nil {
		attempts = repo.Noop{}
	}

	app := fiber.New(fiber.Config{
		AppName:      "SignupWeb 0.1.0",
		ErrorHandler: errorHandler,
	})

	sessionConfig := session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:" + constants.SessionCookieName,
		CookieSecure:   config.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	if config.DatabaseUrl != "" {
		sessionConfig.Storage = postgres.New(postgres.Config{
			ConnectionURI: config.DatabaseUrl,
			Table:         "signupweb_sessions",
		})
	}
	sessionStore := session.New(sessionConfig)

	renderer := &view.Renderer{SessionStore: sessionStore}

	app.Use(logger.New(logger.Config{
		DisableColors: config.DisableLogColors,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: config.EnableStackTrace,
	}))
	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(favicon.New())
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(config.StaticFS),
		PathPrefix: "static",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Combine two CSRF extractors: use form field as default
	// so forms work without JS, with header as fallback.
	csrfFromForm := csrf.CsrfFromForm(constants.CsrfInputName)
	csrfFromHeader := csrf.CsrfFromHeader(constants.CsrfHeaderName)

	app.Use(csrf.New(csrf.Config{
		CookieSecure:   config.CookieSecure,
		CookieSameSite: "Lax",
		Session:        sessionStore,
		Extractor: func(c *fiber.Ctx) (string, error) {
			token, err := csrfFromForm(c)
			if err == nil {
				return token, nil
			}

			if errors.Is(err, csrf.ErrMissingForm) {
				return csrfFromHeader(c)
			}

			return "", err
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			fiberlog.Error("CSRF error: ", err.Error())
			return renderer.RenderComponent(c, fiber.StatusForbidden,
				errorviews.GenericError(fiber.StatusForbidden, "Forbidden"))
		},
		ContextKey: constants.CsrfTokenContextKey,
		CookieName: constants.CsrfCookieName,
	}))

	signUp := SignUpHandlers{
		renderer:     renderer,
		sessionStore: sessionStore,
		registrar:    registrar,
		guard:        signup.NewCacheGuard(config.SubmitLockTTL),
		timeout:      config.RegistrationTimeout,
		repo:         attempts,
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/sign-up", fiber.StatusFound)
	})

	app.Get("/sign-up", NoStore, VaryOnHtmx, signUp.SignUpForm)
	app.Post("/sign-up", NoStore, VaryOnHtmx, signUp.SubmitSignUp)
	app.Get("/sign-in", NoStore, signUp.SignIn)

	return app, nil
}

// NewRegistrar builds the registrar selected by config.RegistrationBackend.
func NewRegistrar(ctx context.Context, config *config.Config) (signup.Registrar, error) {
	switch config.RegistrationBackend {
	case constants.BackendHTTP, "":
		return registration.NewHTTPRegistrar(config.RegistrationUrl, config.RegistrationTimeout), nil
	case constants.BackendCognito:
		if config.CognitoClientId == "" {
			return nil, errors.New("COGNITO_CLIENT_ID is required for the cognito backend")
		}
		return registration.NewCognitoRegistrarFromEnvironment(ctx, config.CognitoClientId)
	default:
		return nil, fmt.Errorf("unknown registration backend %q", config.RegistrationBackend)
	}
}
