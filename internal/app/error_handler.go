package app

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"signupweb/internal/view"
	errorviews "signupweb/views/errors"
)

func errorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := http.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	// Render a template for 404 errors
	if code == http.StatusNotFound {
		return view.RenderComponent(c, code, errorviews.Error404())
	}

	if code < http.StatusInternalServerError {
		return view.RenderComponent(c, code, errorviews.GenericError(code, http.StatusText(code)))
	}

	// Log 500 errors and also render a default template
	fiberlog.Error(err.Error())
	if rerr := view.RenderComponent(c, code, errorviews.Error500()); rerr != nil {
		return c.Status(code).SendString(http.StatusText(code))
	}
	return nil
}
