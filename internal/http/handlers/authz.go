package handlers

import (
	"strings"

	"streetsupply/internal/domain"
	applog "streetsupply/internal/log"
	"streetsupply/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireRole admits only logged in users holding role. API callers get JSON
// errors; page requests are redirected to the login form.
func RequireRole(auth *services.AuthService, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		api := strings.HasPrefix(c.Path(), "/api/")
		sid := c.Cookies("sid")
		var u *domain.User
		if sid != "" {
			u, _ = auth.CurrentUser(sid)
		}
		if u == nil {
			if api {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
			}
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		if u.Role != role {
			applog.Security(c, "access.denied.role", map[string]any{"want": role})
			if api {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": services.ErrForbidden.Error()})
			}
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		return c.Next()
	}
}

// identity returns the caller placed in Locals by RequireRole.
func identity(c *fiber.Ctx) domain.Identity {
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		return u.Identity()
	}
	return domain.Identity{}
}
