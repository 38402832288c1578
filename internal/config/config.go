package config

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"signupweb/internal/constants"
	"signupweb/internal/registration"
	"signupweb/internal/repo"
	"signupweb/internal/signup"
)

// Config is the global config for the app router. Host and Port are needed for absolute URL generation.
type Config struct {
	Env                 string
	Host                string
	Port                string
	RegistrationBackend string
	RegistrationUrl     string
	RegistrationTimeout time.Duration
	CognitoClientId     string
	CookieSecure        bool
	DatabaseUrl         string
	DisableLogColors    bool
	EnableStackTrace    bool
	CompileViews        bool
	SubmitLockTTL       time.Duration
	StaticFS            embed.FS

	// Repo and Registrar are built from the settings above when nil.
	Repo      repo.Repository
	Registrar signup.Registrar
}

// NewConfigFromEnvironment reads the config from the environment. The submit
// lock must outlive a registration call, or a second submission could start
// while the first is still outstanding.
func NewConfigFromEnvironment(staticFS embed.FS) (Config, error) {
	env := os.Getenv("ENV")
	dbUrlKey := "DATABASE_URL"
	if strings.EqualFold(env, constants.EnvTest) {
		dbUrlKey = "TEST_DATABASE_URL"
	}

	backend := strings.ToLower(os.Getenv("REGISTRATION_BACKEND"))
	if backend == "" {
		backend = constants.BackendHTTP
	}

	config := Config{
		Env:                 env,
		Host:                os.Getenv("HOST"),
		Port:                getenv("PORT", "3000"),
		RegistrationBackend: backend,
		RegistrationUrl:     getenv("REGISTRATION_URL", registration.DefaultURL),
		RegistrationTimeout: duration("REGISTRATION_TIMEOUT", registration.DefaultTimeout),
		CognitoClientId:     os.Getenv("COGNITO_CLIENT_ID"),
		CookieSecure:        env == constants.EnvProduction,
		DatabaseUrl:         os.Getenv(dbUrlKey),
		DisableLogColors:    env == constants.EnvProduction,
		EnableStackTrace:    env == constants.EnvDevelopment,
		CompileViews:        env == constants.EnvDevelopment,
		SubmitLockTTL:       duration("SUBMIT_LOCK_TTL", 2*registration.DefaultTimeout),
		StaticFS:            staticFS,
	}

	if config.SubmitLockTTL <= config.RegistrationTimeout {
		return Config{}, fmt.Errorf("SUBMIT_LOCK_TTL (%s) must be longer than REGISTRATION_TIMEOUT (%s)",
			config.SubmitLockTTL, config.RegistrationTimeout)
	}

	return config, nil
}

// NewTestConfig is a config that needs no external services.
func NewTestConfig() *Config {
	return &Config{
		Env:                 constants.EnvTest,
		Port:                "3000",
		RegistrationBackend: constants.BackendHTTP,
		RegistrationUrl:     registration.DefaultURL,
		RegistrationTimeout: time.Second,
		DisableLogColors:    true,
		SubmitLockTTL:       time.Minute,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		fiberlog.Warnf("config: ignoring %s=%q: expected a positive duration", key, v)
		return fallback
	}
	return d
}
