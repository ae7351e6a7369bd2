package handlers

import (
	"context"
	"errors"

	"streetsupply/internal/domain"
	"streetsupply/internal/importer"
	applog "streetsupply/internal/log"
	"streetsupply/internal/services"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	Profiles *services.ProfileService
	InvSvc   *services.InventoryService
	NeedSvc  *services.NeedService
	OfferSvc *services.OfferService
	Feed     *services.FeedService
}

// GET /api/v1/supplier/profile
func (h *SupplierHandler) Profile(c *fiber.Ctx) error {
	p, err := h.Profiles.GetSupplier(identity(c))
	if err != nil {
		return fail(c, "supplier.profile.get", err)
	}
	return c.JSON(p)
}

// PUT /api/v1/supplier/profile
func (h *SupplierHandler) SaveProfile(c *fiber.Ctx) error {
	var in domain.SupplierProfile
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.Profiles.SaveSupplier(identity(c), in)
	if err != nil {
		return fail(c, "supplier.profile.save", err)
	}
	applog.Audit(c, "supplier.profile.save", map[string]any{"pin": p.ServiceAreaPin})
	return c.JSON(p)
}

// GET /api/v1/supplier/inventory
func (h *SupplierHandler) Inventory(c *fiber.Ctx) error {
	v, err := h.InvSvc.List(identity(c))
	if err != nil {
		return fail(c, "inventory.list", err)
	}
	return c.JSON(v)
}

// POST /api/v1/supplier/inventory
func (h *SupplierHandler) AddItem(c *fiber.Ctx) error {
	var in services.ItemInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	it, err := h.InvSvc.Add(identity(c), in)
	if err != nil {
		return fail(c, "inventory.add", err)
	}
	applog.Audit(c, "inventory.add", map[string]any{"item_id": it.ID, "qty": it.Quantity})
	return c.Status(fiber.StatusCreated).JSON(it)
}

// PUT /api/v1/supplier/inventory/:id
func (h *SupplierHandler) UpdateItem(c *fiber.Ctx) error {
	var in services.ItemInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	it, err := h.InvSvc.Update(identity(c), c.Params("id"), in)
	if err != nil {
		return fail(c, "inventory.update", err)
	}
	applog.Audit(c, "inventory.update", map[string]any{"item_id": it.ID, "qty": it.Quantity})
	return c.JSON(it)
}

// DELETE /api/v1/supplier/inventory/:id
func (h *SupplierHandler) DeleteItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.InvSvc.Delete(identity(c), id); err != nil {
		return fail(c, "inventory.delete", err)
	}
	applog.Audit(c, "inventory.delete", map[string]any{"item_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/v1/supplier/inventory/:id/visibility
func (h *SupplierHandler) ToggleVisibility(c *fiber.Ctx) error {
	id := c.Params("id")
	visible, err := h.InvSvc.ToggleVisibility(identity(c), id)
	if err != nil {
		return fail(c, "inventory.visibility", err)
	}
	applog.Audit(c, "inventory.visibility", map[string]any{"item_id": id, "visible": visible})
	return c.JSON(fiber.Map{"id": id, "isVisible": visible})
}

// POST /api/v1/supplier/inventory/import (multipart field "file")
func (h *SupplierHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "file"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "attach a CSV file", "field": "file"})
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, "inventory.import", err)
	}
	defer f.Close()

	res, err := h.InvSvc.Import(identity(c), f)
	if errors.Is(err, importer.ErrEmpty) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "field": "file"})
	}
	if err != nil {
		return fail(c, "inventory.import", err)
	}
	applog.Audit(c, "inventory.import", map[string]any{"file": fh.Filename, "inserted": res.Inserted, "failed": res.Failed})
	return c.JSON(res)
}

// GET /api/v1/supplier/needs
func (h *SupplierHandler) Needs(c *fiber.Ctx) error {
	needs, err := h.NeedSvc.VisibleNeeds(identity(c))
	if err != nil {
		return fail(c, "supplier.needs.list", err)
	}
	return c.JSON(needs)
}

// POST /api/v1/supplier/needs/:id/offers
func (h *SupplierHandler) SubmitOffer(c *fiber.Ctx) error {
	var in services.OfferInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	o, err := h.OfferSvc.Submit(identity(c), c.Params("id"), in)
	if err != nil {
		return fail(c, "offer.submit", err)
	}
	applog.Audit(c, "offer.submit", map[string]any{"offer_id": o.ID, "need_id": o.VendorNeedID, "total": o.TotalPrice.String()})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /api/v1/supplier/offers
func (h *SupplierHandler) Offers(c *fiber.Ctx) error {
	v, err := h.OfferSvc.ForSupplier(identity(c))
	if err != nil {
		return fail(c, "supplier.offers.list", err)
	}
	return c.JSON(v)
}

// GET /api/v1/supplier/needs/stream
func (h *SupplierHandler) NeedsStream(c *fiber.Ctx) error {
	id := identity(c)
	return openFeed(c, "supplier.needs.stream", func(ctx context.Context) (<-chan []services.VisibleNeed, error) {
		return h.Feed.Needs(ctx, id)
	})
}

// GET /api/v1/supplier/inventory/stream
func (h *SupplierHandler) InventoryStream(c *fiber.Ctx) error {
	id := identity(c)
	return openFeed(c, "supplier.inventory.stream", func(ctx context.Context) (<-chan services.InventoryView, error) {
		return h.Feed.Inventory(ctx, id)
	})
}

// GET /supplier/inventory
func (h *SupplierHandler) InventoryPage(c *fiber.Ctx) error {
	id := identity(c)
	inv, err := h.InvSvc.List(id)
	if err != nil {
		applog.Error(c, "supplier.page.inventory", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load inventory"})
	}
	needs, err := h.NeedSvc.VisibleNeeds(id)
	if err != nil {
		applog.Error(c, "supplier.page.needs", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load vendor needs"})
	}
	offers, err := h.OfferSvc.ForSupplier(id)
	if err != nil {
		applog.Error(c, "supplier.page.offers", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load offers"})
	}
	return render(c, "supplier_inventory", fiber.Map{"Inventory": inv, "Needs": needs, "Offers": offers})
}
