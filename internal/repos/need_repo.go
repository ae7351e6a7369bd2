package repos

import (
	"streetsupply/internal/domain"

	"github.com/jmoiron/sqlx"
)

type NeedRepo struct{ db *sqlx.DB }

func NewNeedRepo(db *sqlx.DB) *NeedRepo { return &NeedRepo{db: db} }

// NeedLineRow is a material line joined with the owning vendor's profile.
type NeedLineRow struct {
	domain.MaterialLine
	VendorName   string `db:"vendor_name"`
	BusinessName string `db:"business_name"`
	VendorPIN    string `db:"pin_code"`
}

// Lines returns a vendor's need document in insertion order.
func (r *NeedRepo) Lines(vendorID string) ([]domain.MaterialLine, error) {
	lines := []domain.MaterialLine{}
	err := r.db.Select(&lines, `
		SELECT vendor_id, line_id, name, quantity, unit, urgency, preferred_time, position, created_at
		FROM need_lines
		WHERE vendor_id = ?
		ORDER BY position
	`, vendorID)
	return lines, err
}

// AppendLine adds a line at the end of the vendor's need. A reused line id yields ErrDuplicate.
func (r *NeedRepo) AppendLine(l domain.MaterialLine) error {
	_, err := r.db.Exec(`
		INSERT INTO need_lines(vendor_id, line_id, name, quantity, unit, urgency, preferred_time, position, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?,
		  (SELECT COALESCE(MAX(position), 0) + 1 FROM need_lines WHERE vendor_id = ?), ?)
	`, l.VendorID, l.ID, l.Name, l.Quantity, l.Unit, l.Urgency, l.PreferredTime, l.VendorID, l.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// RemoveLine deletes one line by id; ErrNotFound if the vendor has no such line.
func (r *NeedRepo) RemoveLine(vendorID, lineID string) error {
	res, err := r.db.Exec(`DELETE FROM need_lines WHERE vendor_id = ? AND line_id = ?`, vendorID, lineID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AllLines returns every need line with vendor PIN, grouped by vendor.
func (r *NeedRepo) AllLines() ([]NeedLineRow, error) {
	rows := []NeedLineRow{}
	err := r.db.Select(&rows, `
		SELECT n.vendor_id, n.line_id, n.name, n.quantity, n.unit, n.urgency, n.preferred_time,
		       n.position, n.created_at,
		       COALESCE(vp.full_name, '') AS vendor_name,
		       COALESCE(vp.business_name, '') AS business_name,
		       COALESCE(vp.pin_code, '') AS pin_code
		FROM need_lines n
		LEFT JOIN vendor_profiles vp ON vp.user_id = n.vendor_id
		ORDER BY n.vendor_id, n.position
	`)
	return rows, err
}

// HasLines reports whether a vendor currently has an open need.
func (r *NeedRepo) HasLines(vendorID string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM need_lines WHERE vendor_id = ?`, vendorID); err != nil {
		return false, err
	}
	return n > 0, nil
}
