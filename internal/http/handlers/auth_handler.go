package handlers

import (
	"errors"
	"time"

	"streetsupply/internal/domain"
	"streetsupply/internal/log"
	"streetsupply/internal/services"
	"streetsupply/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
	Role     string `json:"role" form:"role"`
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable behind TLS
		})
	}
	return sid
}

// home is where a freshly logged in user lands.
func home(u *domain.User) string {
	if u.Role == domain.RoleSupplier {
		return "/supplier/inventory"
	}
	return "/vendor/offers"
}

func wantsJSON(c *fiber.Ctx) bool { return c.Is("json") }

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	loginFail := func(reason string) error {
		log.Security(c, "auth.login.fail", map[string]any{"email": in.Email, "reason": reason})
		if wantsJSON(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}
	if _, ok := validate.Email(in.Email); !ok {
		return loginFail("bad_format")
	}

	u, err := h.Auth.Login(sid, in.Email, in.Password)
	if err != nil {
		if !errors.Is(err, services.ErrBadCreds) {
			log.Error(c, "auth.login.store", err, nil)
		}
		return loginFail("bad_credentials")
	}
	c.Locals("user", u)
	log.Audit(c, "auth.login.success", map[string]any{"email": u.Email, "role": u.Role})
	if wantsJSON(c) {
		return c.JSON(fiber.Map{"id": u.ID, "role": u.Role, "name": u.Name})
	}
	return c.Redirect(home(u))
}

// Register creates an account. The caller logs in separately.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	u, err := h.Auth.Register(in.Email, in.Name, in.Password, in.Role)
	switch {
	case errors.Is(err, services.ErrUnknownRole):
		log.Security(c, "validation.fail", map[string]any{"field": "role"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "field": "role"})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return fail(c, "auth.register", err)
	}
	log.Audit(c, "auth.register", map[string]any{"user_id": u.ID, "role": u.Role})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	if wantsJSON(c) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect("/login")
}
