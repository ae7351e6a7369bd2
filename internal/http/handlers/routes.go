package handlers

import (
	"streetsupply/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// Mount registers the role-scoped API and pages. Login, logout and global
// middleware are left to the caller so each can pick its own limits.
func Mount(app *fiber.App, d *Deps) {
	app.Post("/register", d.AuthHandler.Register)

	v := d.VendorHandler
	vendor := app.Group("/api/v1/vendor", RequireRole(d.Auth, domain.RoleVendor))
	vendor.Get("/profile", v.Profile)
	vendor.Put("/profile", v.SaveProfile)
	vendor.Get("/needs", v.Need)
	vendor.Post("/needs/lines", v.AddLine)
	vendor.Delete("/needs/lines/:id", v.RemoveLine)
	vendor.Get("/offers", v.Offers)
	vendor.Get("/offers/stream", v.OffersStream)
	vendor.Post("/offers/:id/accept", v.Accept)
	vendor.Post("/offers/:id/reject", v.Reject)
	app.Get("/vendor/offers", RequireRole(d.Auth, domain.RoleVendor), v.OffersPage)

	s := d.SupplierHandler
	supplier := app.Group("/api/v1/supplier", RequireRole(d.Auth, domain.RoleSupplier))
	supplier.Get("/profile", s.Profile)
	supplier.Put("/profile", s.SaveProfile)
	supplier.Get("/inventory", s.Inventory)
	supplier.Post("/inventory", s.AddItem)
	supplier.Post("/inventory/import", s.Import)
	supplier.Get("/inventory/stream", s.InventoryStream)
	supplier.Put("/inventory/:id", s.UpdateItem)
	supplier.Delete("/inventory/:id", s.DeleteItem)
	supplier.Post("/inventory/:id/visibility", s.ToggleVisibility)
	supplier.Get("/needs", s.Needs)
	supplier.Get("/needs/stream", s.NeedsStream)
	supplier.Post("/needs/:id/offers", s.SubmitOffer)
	supplier.Get("/offers", s.Offers)
	app.Get("/supplier/inventory", RequireRole(d.Auth, domain.RoleSupplier), s.InventoryPage)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
}
