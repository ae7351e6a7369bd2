package repos

import (
	"streetsupply/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProfileRepo struct{ db *sqlx.DB }

func NewProfileRepo(db *sqlx.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) Vendor(userID string) (*domain.VendorProfile, error) {
	var p domain.VendorProfile
	err := r.db.Get(&p, `
		SELECT user_id, full_name, business_type, business_name, phone, email, pin_code,
		       preferred_delivery, avg_daily_needs, language, created_at, updated_at
		FROM vendor_profiles WHERE user_id = ?`, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// UpsertVendor writes the whole profile. created_at is kept from the first write.
func (r *ProfileRepo) UpsertVendor(p domain.VendorProfile) error {
	_, err := r.db.NamedExec(`
		INSERT INTO vendor_profiles(user_id, full_name, business_type, business_name, phone, email,
		  pin_code, preferred_delivery, avg_daily_needs, language, created_at, updated_at)
		VALUES(:user_id, :full_name, :business_type, :business_name, :phone, :email,
		  :pin_code, :preferred_delivery, :avg_daily_needs, :language, :created_at, :updated_at)
		ON CONFLICT(user_id) DO UPDATE SET
		  full_name = excluded.full_name,
		  business_type = excluded.business_type,
		  business_name = excluded.business_name,
		  phone = excluded.phone,
		  email = excluded.email,
		  pin_code = excluded.pin_code,
		  preferred_delivery = excluded.preferred_delivery,
		  avg_daily_needs = excluded.avg_daily_needs,
		  language = excluded.language,
		  updated_at = excluded.updated_at
	`, p)
	return err
}

func (r *ProfileRepo) Supplier(userID string) (*domain.SupplierProfile, error) {
	var p domain.SupplierProfile
	err := r.db.Get(&p, `
		SELECT user_id, company_name, contact_person, phone, email, business_type, product_categories,
		       service_area_pin, delivery_modes, pricing_preference, created_at, updated_at
		FROM supplier_profiles WHERE user_id = ?`, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *ProfileRepo) UpsertSupplier(p domain.SupplierProfile) error {
	_, err := r.db.NamedExec(`
		INSERT INTO supplier_profiles(user_id, company_name, contact_person, phone, email, business_type,
		  product_categories, service_area_pin, delivery_modes, pricing_preference, created_at, updated_at)
		VALUES(:user_id, :company_name, :contact_person, :phone, :email, :business_type,
		  :product_categories, :service_area_pin, :delivery_modes, :pricing_preference, :created_at, :updated_at)
		ON CONFLICT(user_id) DO UPDATE SET
		  company_name = excluded.company_name,
		  contact_person = excluded.contact_person,
		  phone = excluded.phone,
		  email = excluded.email,
		  business_type = excluded.business_type,
		  product_categories = excluded.product_categories,
		  service_area_pin = excluded.service_area_pin,
		  delivery_modes = excluded.delivery_modes,
		  pricing_preference = excluded.pricing_preference,
		  updated_at = excluded.updated_at
	`, p)
	return err
}
