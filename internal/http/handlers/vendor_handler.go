package handlers

import (
	"context"

	"streetsupply/internal/domain"
	applog "streetsupply/internal/log"
	"streetsupply/internal/services"

	"github.com/gofiber/fiber/v2"
)

type VendorHandler struct {
	Profiles *services.ProfileService
	Needs    *services.NeedService
	OfferSvc *services.OfferService
	Feed     *services.FeedService
}

// GET /api/v1/vendor/profile
func (h *VendorHandler) Profile(c *fiber.Ctx) error {
	p, err := h.Profiles.GetVendor(identity(c))
	if err != nil {
		return fail(c, "vendor.profile.get", err)
	}
	return c.JSON(p)
}

// PUT /api/v1/vendor/profile
func (h *VendorHandler) SaveProfile(c *fiber.Ctx) error {
	var in domain.VendorProfile
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.Profiles.SaveVendor(identity(c), in)
	if err != nil {
		return fail(c, "vendor.profile.save", err)
	}
	applog.Audit(c, "vendor.profile.save", map[string]any{"pin": p.PinCode})
	return c.JSON(p)
}

// GET /api/v1/vendor/needs
func (h *VendorHandler) Need(c *fiber.Ctx) error {
	v, err := h.Needs.Get(identity(c))
	if err != nil {
		return fail(c, "vendor.need.get", err)
	}
	return c.JSON(v)
}

// POST /api/v1/vendor/needs/lines
func (h *VendorHandler) AddLine(c *fiber.Ctx) error {
	var in services.LineInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	l, err := h.Needs.AddLine(identity(c), in)
	if err != nil {
		return fail(c, "vendor.need.add", err)
	}
	applog.Audit(c, "vendor.need.add", map[string]any{"line_id": l.ID, "name": l.Name, "qty": l.Quantity})
	return c.Status(fiber.StatusCreated).JSON(l)
}

// DELETE /api/v1/vendor/needs/lines/:id
func (h *VendorHandler) RemoveLine(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Needs.RemoveLine(identity(c), id); err != nil {
		return fail(c, "vendor.need.remove", err)
	}
	applog.Audit(c, "vendor.need.remove", map[string]any{"line_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/vendor/offers
func (h *VendorHandler) Offers(c *fiber.Ctx) error {
	v, err := h.OfferSvc.ForVendor(identity(c))
	if err != nil {
		return fail(c, "vendor.offers.list", err)
	}
	return c.JSON(v)
}

// POST /api/v1/vendor/offers/:id/accept
func (h *VendorHandler) Accept(c *fiber.Ctx) error {
	o, err := h.OfferSvc.Accept(identity(c), c.Params("id"))
	if err != nil {
		return fail(c, "vendor.offer.accept", err)
	}
	applog.Audit(c, "vendor.offer.accept", map[string]any{"offer_id": o.ID, "supplier_id": o.SupplierID})
	return c.JSON(o)
}

// POST /api/v1/vendor/offers/:id/reject
func (h *VendorHandler) Reject(c *fiber.Ctx) error {
	o, err := h.OfferSvc.Reject(identity(c), c.Params("id"))
	if err != nil {
		return fail(c, "vendor.offer.reject", err)
	}
	applog.Audit(c, "vendor.offer.reject", map[string]any{"offer_id": o.ID, "supplier_id": o.SupplierID})
	return c.JSON(o)
}

// GET /api/v1/vendor/offers/stream
func (h *VendorHandler) OffersStream(c *fiber.Ctx) error {
	id := identity(c)
	return openFeed(c, "vendor.offers.stream", func(ctx context.Context) (<-chan services.VendorOffers, error) {
		return h.Feed.Offers(ctx, id)
	})
}

// GET /vendor/offers
func (h *VendorHandler) OffersPage(c *fiber.Ctx) error {
	id := identity(c)
	need, err := h.Needs.Get(id)
	if err != nil {
		applog.Error(c, "vendor.page.need", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your needs"})
	}
	offers, err := h.OfferSvc.ForVendor(id)
	if err != nil {
		applog.Error(c, "vendor.page.offers", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load offers"})
	}
	return render(c, "vendor_offers", fiber.Map{"Need": need, "Offers": offers})
}
