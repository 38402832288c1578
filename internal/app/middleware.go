package app

import (
	"github.com/gofiber/fiber/v2"
)

// NoStore keeps form pages (which carry CSRF tokens and drafts) out of caches.
func NoStore(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Next()
}

// VaryOnHtmx marks responses that differ between htmx and full page requests.
func VaryOnHtmx(c *fiber.Ctx) error {
	c.Vary("HX-Request")
	return c.Next()
}
