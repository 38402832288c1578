package view

import (
	"context"
	"io"
	"sync"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"

	"signupweb/components"
	"signupweb/views"
)

// Page is the data every template receives.
type Page struct {
	CSRFToken string
	Data      interface{}
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
	defaultErr  error
	current     *Set
	currentMu   sync.RWMutex
)

// Use replaces the template set used by components, e.g. with one that compiles on render.
func Use(s *Set) {
	currentMu.Lock()
	current = s
	currentMu.Unlock()
}

func activeSet() (*Set, error) {
	currentMu.RLock()
	s := current
	currentMu.RUnlock()
	if s != nil {
		return s, nil
	}

	defaultOnce.Do(func() {
		defaultSet, defaultErr = New(Config{FS: views.FS})
	})
	return defaultSet, defaultErr
}

// Component wraps a named template as a templ.Component.
func Component(name string, data interface{}) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s, err := activeSet()
		if err != nil {
			return err
		}
		return s.Render(w, name, Page{
			CSRFToken: components.GetCsrfToken(ctx),
			Data:      data,
		})
	})
}

func RenderComponent(c *fiber.Ctx, status int, component templ.Component) error {
	c.Status(status).Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Context(), c)
}
