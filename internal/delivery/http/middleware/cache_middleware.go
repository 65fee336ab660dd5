package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NoStore keeps browsers and proxies from caching polled responses.
func (m *Middleware) NoStore() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Set(fiber.HeaderCacheControl, "no-store")
		return ctx.Next()
	}
}

// QuietPath reports whether requests to path are left out of the access log.
func (m *Middleware) QuietPath(path string) bool {
	if m != nil && m.Config != nil && m.Config.GetBool("log.access_poll") {
		return false
	}
	return strings.HasPrefix(path, "/games/") && strings.HasSuffix(path, "/commands")
}
