package view

import (
	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/session"

	"signupweb/internal/constants"
)

// Renderer renders components and carries one-shot notices across a redirect in the session.
type Renderer struct {
	SessionStore *session.Store
}

func (r *Renderer) RenderComponent(c *fiber.Ctx, status int, component templ.Component) error {
	return RenderComponent(c, status, component)
}

// IsHtmx reports whether the request was issued by htmx.
func IsHtmx(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

// TakeFlash returns and clears the pending notice.
func (r *Renderer) TakeFlash(c *fiber.Ctx) string {
	sess, err := r.SessionStore.Get(c)
	if err != nil {
		fiberlog.Error("flash: ", err)
		return ""
	}

	notice, _ := sess.Get(constants.FlashSessionKey).(string)
	if notice == "" {
		return ""
	}

	sess.Delete(constants.FlashSessionKey)
	if err := sess.Save(); err != nil {
		fiberlog.Error("flash: ", err)
	}
	return notice
}
