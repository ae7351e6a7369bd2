package repos

import (
	"errors"

	"streetsupply/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrNotPending is returned when a decision targets an offer already accepted or rejected.
var ErrNotPending = errors.New("offer is no longer pending")

type OfferRepo struct{ db *sqlx.DB }

func NewOfferRepo(db *sqlx.DB) *OfferRepo { return &OfferRepo{db: db} }

// OfferRow is an offer joined with the supplier's company name.
type OfferRow struct {
	domain.SupplierOffer
	SupplierName string `db:"company_name"`
}

const offerCols = `o.id, o.supplier_id, o.vendor_need_id, o.total_price, o.delivery_time, o.delivery_mode,
	o.notes, o.status, o.created_at, o.updated_at`

// Insert stores a new offer. A second offer by the same supplier on the same
// need violates the unique key and yields ErrDuplicate.
func (r *OfferRepo) Insert(o domain.SupplierOffer) error {
	_, err := r.db.NamedExec(`
		INSERT INTO supplier_offers(id, supplier_id, vendor_need_id, total_price, delivery_time,
		  delivery_mode, notes, status, created_at, updated_at)
		VALUES(:id, :supplier_id, :vendor_need_id, :total_price, :delivery_time,
		  :delivery_mode, :notes, :status, :created_at, :updated_at)
	`, o)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *OfferRepo) Get(id string) (*domain.SupplierOffer, error) {
	var o domain.SupplierOffer
	if err := r.db.Get(&o, `SELECT `+offerCols+` FROM supplier_offers o WHERE o.id = ?`, id); err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

// ByNeed lists offers addressed to a vendor need, newest first.
func (r *OfferRepo) ByNeed(needID string) ([]OfferRow, error) {
	rows := []OfferRow{}
	err := r.db.Select(&rows, `
		SELECT `+offerCols+`, COALESCE(sp.company_name, '') AS company_name
		FROM supplier_offers o
		LEFT JOIN supplier_profiles sp ON sp.user_id = o.supplier_id
		WHERE o.vendor_need_id = ?
		ORDER BY o.created_at DESC, o.id
	`, needID)
	return rows, err
}

// BySupplier lists every offer a supplier has submitted.
func (r *OfferRepo) BySupplier(supplierID string) ([]domain.SupplierOffer, error) {
	offers := []domain.SupplierOffer{}
	err := r.db.Select(&offers, `
		SELECT `+offerCols+`
		FROM supplier_offers o
		WHERE o.supplier_id = ?
		ORDER BY o.created_at DESC, o.id
	`, supplierID)
	return offers, err
}

// Decide moves a pending offer on needID to status in one conditional write.
// Offers on other needs are reported as ErrNotFound.
func (r *OfferRepo) Decide(id, needID, status, updatedAt string) error {
	res, err := r.db.Exec(`
		UPDATE supplier_offers SET status = ?, updated_at = ?
		WHERE id = ? AND vendor_need_id = ? AND status = 'pending'
	`, status, updatedAt, id, needID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}
	o, err := r.Get(id)
	if err != nil {
		return err
	}
	if o.VendorNeedID != needID {
		return ErrNotFound
	}
	return ErrNotPending
}
