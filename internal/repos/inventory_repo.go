package repos

import (
	"streetsupply/internal/domain"

	"github.com/jmoiron/sqlx"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

const inventoryCols = `id, supplier_id, product_name, category, quantity, unit, unit_price, expiry_date,
	shelf_life, delivery_options, notes, is_visible, created_at, updated_at`

// ListBySupplier returns a supplier's items, newest first.
func (r *InventoryRepo) ListBySupplier(supplierID string) ([]domain.InventoryItem, error) {
	items := []domain.InventoryItem{}
	err := r.db.Select(&items, `SELECT `+inventoryCols+`
		FROM inventory_items
		WHERE supplier_id = ?
		ORDER BY created_at DESC, product_name
	`, supplierID)
	return items, err
}

func (r *InventoryRepo) Get(id string) (*domain.InventoryItem, error) {
	var it domain.InventoryItem
	if err := r.db.Get(&it, `SELECT `+inventoryCols+` FROM inventory_items WHERE id = ?`, id); err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

func (r *InventoryRepo) Insert(it domain.InventoryItem) error {
	_, err := r.db.NamedExec(`
		INSERT INTO inventory_items(`+inventoryCols+`)
		VALUES(:id, :supplier_id, :product_name, :category, :quantity, :unit, :unit_price, :expiry_date,
		  :shelf_life, :delivery_options, :notes, :is_visible, :created_at, :updated_at)
	`, it)
	return err
}

// Update rewrites the editable fields of an item owned by it.SupplierID.
func (r *InventoryRepo) Update(it domain.InventoryItem) error {
	res, err := r.db.NamedExec(`
		UPDATE inventory_items SET
		  product_name = :product_name,
		  category = :category,
		  quantity = :quantity,
		  unit = :unit,
		  unit_price = :unit_price,
		  expiry_date = :expiry_date,
		  shelf_life = :shelf_life,
		  delivery_options = :delivery_options,
		  notes = :notes,
		  is_visible = :is_visible,
		  updated_at = :updated_at
		WHERE id = :id AND supplier_id = :supplier_id
	`, it)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) SetVisible(supplierID, id string, visible bool, updatedAt string) error {
	res, err := r.db.Exec(`
		UPDATE inventory_items SET is_visible = ?, updated_at = ?
		WHERE id = ? AND supplier_id = ?
	`, visible, updatedAt, id, supplierID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) Delete(supplierID, id string) error {
	res, err := r.db.Exec(`DELETE FROM inventory_items WHERE id = ? AND supplier_id = ?`, id, supplierID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
