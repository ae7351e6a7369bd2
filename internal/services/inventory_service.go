package services

import (
	"errors"
	"io"
	"math"
	"time"

	"streetsupply/internal/derive"
	"streetsupply/internal/domain"
	"streetsupply/internal/importer"
	"streetsupply/internal/repos"
	"streetsupply/internal/store"
	"streetsupply/internal/validate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryService struct {
	Items *repos.InventoryRepo
	Hub   *store.Hub
	Clock Clock
}

func NewInventoryService(items *repos.InventoryRepo, hub *store.Hub, clock Clock) *InventoryService {
	return &InventoryService{Items: items, Hub: hub, Clock: clock}
}

type ItemInput struct {
	ProductName     string          `json:"productName" form:"productName"`
	Category        string          `json:"category" form:"category"`
	Quantity        float64         `json:"quantity" form:"quantity"`
	Unit            string          `json:"unit" form:"unit"`
	UnitPrice       decimal.Decimal `json:"unitPrice" form:"unitPrice"`
	ExpiryDate      string          `json:"expiryDate" form:"expiryDate"`
	ShelfLife       *int            `json:"shelfLife" form:"shelfLife"`
	DeliveryOptions []string        `json:"deliveryOptions" form:"deliveryOptions"`
	Notes           string          `json:"notes" form:"notes"`
	IsVisible       *bool           `json:"isVisible" form:"isVisible"`
}

// ItemView is an inventory item with its derived badges.
type ItemView struct {
	domain.InventoryItem
	Status derive.ItemStatus `json:"status"`
}

type InventoryView struct {
	Items   []ItemView              `json:"items"`
	Summary derive.InventorySummary `json:"summary"`
}

func checkItem(in ItemInput) (domain.InventoryItem, error) {
	var it domain.InventoryItem
	var ok bool
	if it.ProductName, ok = validate.Name(in.ProductName); !ok {
		return it, invalid("productName", "product name is required")
	}
	if it.Category, ok = validate.OneOf(in.Category, domain.InventoryCategories); !ok {
		return it, invalid("category", "choose a category")
	}
	if in.Quantity < 0 || math.IsNaN(in.Quantity) || math.IsInf(in.Quantity, 0) {
		return it, invalid("quantity", "quantity cannot be negative")
	}
	it.Quantity = in.Quantity
	if it.Unit, ok = validate.OneOf(in.Unit, domain.InventoryUnits); !ok {
		return it, invalid("unit", "choose a unit")
	}
	if in.UnitPrice.IsNegative() {
		return it, invalid("unitPrice", "price cannot be negative")
	}
	it.UnitPrice = in.UnitPrice
	if it.ExpiryDate, ok = validate.Date(in.ExpiryDate); !ok {
		return it, invalid("expiryDate", "use YYYY-MM-DD")
	}
	if in.ShelfLife != nil {
		if *in.ShelfLife < 0 {
			return it, invalid("shelfLife", "shelf life cannot be negative")
		}
		days := *in.ShelfLife
		it.ShelfLife = &days
	}
	opts, ok := validate.AllOf(in.DeliveryOptions, domain.DeliveryModes)
	if !ok || len(opts) == 0 {
		return it, invalid("deliveryOptions", "select at least one delivery option")
	}
	it.DeliveryOptions = opts
	it.Notes = validate.Text(in.Notes, 500)
	it.IsVisible = in.IsVisible == nil || *in.IsVisible
	return it, nil
}

// Add stores a new item for the calling supplier. Items are visible unless
// the input says otherwise.
func (s *InventoryService) Add(id domain.Identity, in ItemInput) (*domain.InventoryItem, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return nil, err
	}
	it, err := checkItem(in)
	if err != nil {
		return nil, err
	}
	it.ID = uuid.NewString()
	it.SupplierID = id.UserID
	it.CreatedAt = s.Clock.stamp()
	it.UpdatedAt = it.CreatedAt
	if err := s.Items.Insert(it); err != nil {
		return nil, err
	}
	s.Hub.Publish(store.Inventory, it.ID, id.UserID)
	return &it, nil
}

func (s *InventoryService) Update(id domain.Identity, itemID string, in ItemInput) (*domain.InventoryItem, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return nil, err
	}
	cur, err := s.owned(id, itemID)
	if err != nil {
		return nil, err
	}
	it, err := checkItem(in)
	if err != nil {
		return nil, err
	}
	it.ID = cur.ID
	it.SupplierID = cur.SupplierID
	it.CreatedAt = cur.CreatedAt
	it.UpdatedAt = s.Clock.stamp()
	if in.IsVisible == nil {
		it.IsVisible = cur.IsVisible
	}
	if err := s.Items.Update(it); err != nil {
		return nil, storeErr(err)
	}
	s.Hub.Publish(store.Inventory, it.ID, id.UserID)
	return &it, nil
}

func (s *InventoryService) Delete(id domain.Identity, itemID string) error {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return err
	}
	if _, err := s.owned(id, itemID); err != nil {
		return err
	}
	if err := s.Items.Delete(id.UserID, itemID); err != nil {
		return storeErr(err)
	}
	s.Hub.Publish(store.Inventory, itemID, id.UserID)
	return nil
}

// ToggleVisibility flips whether vendors can see the item and returns the new state.
func (s *InventoryService) ToggleVisibility(id domain.Identity, itemID string) (bool, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return false, err
	}
	cur, err := s.owned(id, itemID)
	if err != nil {
		return false, err
	}
	visible := !cur.IsVisible
	if err := s.Items.SetVisible(id.UserID, itemID, visible, s.Clock.stamp()); err != nil {
		return false, storeErr(err)
	}
	s.Hub.Publish(store.Inventory, itemID, id.UserID)
	return visible, nil
}

// owned loads an item and checks it belongs to the caller.
func (s *InventoryService) owned(id domain.Identity, itemID string) (*domain.InventoryItem, error) {
	itemID, ok := validate.ID(itemID)
	if !ok {
		return nil, invalid("id", "invalid item id")
	}
	it, err := s.Items.Get(itemID)
	if err != nil {
		return nil, storeErr(err)
	}
	if it.SupplierID != id.UserID {
		return nil, ErrForbidden
	}
	return it, nil
}

// List returns the supplier's items with derived status and the summary figures.
func (s *InventoryService) List(id domain.Identity) (InventoryView, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return InventoryView{}, err
	}
	items, err := s.Items.ListBySupplier(id.UserID)
	if err != nil {
		return InventoryView{}, err
	}
	return inventoryView(items, s.Clock.now()), nil
}

func inventoryView(items []domain.InventoryItem, now time.Time) InventoryView {
	v := InventoryView{Items: make([]ItemView, 0, len(items))}
	for _, it := range items {
		v.Items = append(v.Items, ItemView{InventoryItem: it, Status: derive.Status(it, now)})
	}
	v.Summary = derive.InventoryStats(items, now)
	return v
}

// Import loads a CSV upload into the supplier's inventory row by row.
func (s *InventoryService) Import(id domain.Identity, src io.Reader) (importer.Result, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return importer.Result{}, err
	}
	sink := &importSink{svc: s, supplierID: id.UserID}
	res, err := importer.Import(src, sink)
	if sink.inserted > 0 {
		s.Hub.Publish(store.Inventory, "", id.UserID)
	}
	return res, err
}

type importSink struct {
	svc        *InventoryService
	supplierID string
	inserted   int
}

func (k *importSink) InsertImported(row importer.Row) error {
	name, ok := validate.Name(row.ProductName)
	if !ok {
		return errors.New("name is required")
	}
	now := k.svc.Clock.stamp()
	it := domain.InventoryItem{
		ID:              uuid.NewString(),
		SupplierID:      k.supplierID,
		ProductName:     name,
		Category:        row.Category,
		Quantity:        row.Quantity,
		Unit:            row.Unit,
		UnitPrice:       row.UnitPrice,
		ShelfLife:       row.ShelfLife,
		DeliveryOptions: row.DeliveryOptions,
		IsVisible:       true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := k.svc.Items.Insert(it); err != nil {
		return err
	}
	k.inserted++
	return nil
}

// storeErr maps repository sentinels onto service ones.
func storeErr(err error) error {
	if errors.Is(err, repos.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
