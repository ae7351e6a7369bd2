package domain

import "github.com/shopspring/decimal"

type VendorProfile struct {
	UserID            string `db:"user_id" json:"uid"`
	FullName          string `db:"full_name" json:"fullName"`
	BusinessType      string `db:"business_type" json:"businessType"`
	BusinessName      string `db:"business_name" json:"businessName,omitempty"`
	Phone             string `db:"phone" json:"phone"`
	Email             string `db:"email" json:"email,omitempty"`
	PinCode           string `db:"pin_code" json:"pinCode"`
	PreferredDelivery string `db:"preferred_delivery" json:"preferredDelivery"` // home | pickup | either
	AvgDailyNeeds     Tags   `db:"avg_daily_needs" json:"avgDailyNeeds"`
	Language          string `db:"language" json:"language"`
	CreatedAt         string `db:"created_at" json:"createdAt"`
	UpdatedAt         string `db:"updated_at" json:"updatedAt,omitempty"`
}

type SupplierProfile struct {
	UserID            string `db:"user_id" json:"uid"`
	CompanyName       string `db:"company_name" json:"companyName"`
	ContactPerson     string `db:"contact_person" json:"contactPersonName"`
	Phone             string `db:"phone" json:"phone"`
	Email             string `db:"email" json:"email,omitempty"`
	BusinessType      string `db:"business_type" json:"businessType"`
	ProductCategories Tags   `db:"product_categories" json:"productCategories"`
	ServiceAreaPin    string `db:"service_area_pin" json:"serviceAreaPin"`
	DeliveryModes     Tags   `db:"delivery_modes" json:"deliveryModes"`
	PricingPreference string `db:"pricing_preference" json:"pricingPreference"` // fixed | dynamic
	CreatedAt         string `db:"created_at" json:"createdAt"`
	UpdatedAt         string `db:"updated_at" json:"updatedAt,omitempty"`
}

// MaterialLine is one requested item inside a vendor's need.
type MaterialLine struct {
	ID            string  `db:"line_id" json:"id"`
	VendorID      string  `db:"vendor_id" json:"-"`
	Name          string  `db:"name" json:"name"`
	Quantity      float64 `db:"quantity" json:"quantity"`
	Unit          string  `db:"unit" json:"unit"`
	Urgency       string  `db:"urgency" json:"urgency"` // low | medium | high
	PreferredTime string  `db:"preferred_time" json:"preferredTime,omitempty"`
	Position      int     `db:"position" json:"-"`
	CreatedAt     string  `db:"created_at" json:"-"`
}

// MaterialRequest is the vendor need document. Its id is the vendor user id.
type MaterialRequest struct {
	VendorID  string         `json:"id"`
	Materials []MaterialLine `json:"materials"`
}

type InventoryItem struct {
	ID              string          `db:"id" json:"id"`
	SupplierID      string          `db:"supplier_id" json:"supplierId"`
	ProductName     string          `db:"product_name" json:"productName"`
	Category        string          `db:"category" json:"category"`
	Quantity        float64         `db:"quantity" json:"quantity"`
	Unit            string          `db:"unit" json:"unit"`
	UnitPrice       decimal.Decimal `db:"unit_price" json:"unitPrice"`
	ExpiryDate      string          `db:"expiry_date" json:"expiryDate,omitempty"` // YYYY-MM-DD
	ShelfLife       *int            `db:"shelf_life" json:"shelfLife,omitempty"`   // days
	DeliveryOptions Tags            `db:"delivery_options" json:"deliveryOptions"`
	Notes           string          `db:"notes" json:"notes,omitempty"`
	IsVisible       bool            `db:"is_visible" json:"isVisible"`
	CreatedAt       string          `db:"created_at" json:"createdAt"`
	UpdatedAt       string          `db:"updated_at" json:"updatedAt"`
}

const (
	OfferPending  = "pending"
	OfferAccepted = "accepted"
	OfferRejected = "rejected"
)

type SupplierOffer struct {
	ID           string          `db:"id" json:"id"`
	SupplierID   string          `db:"supplier_id" json:"supplierId"`
	VendorNeedID string          `db:"vendor_need_id" json:"vendorNeedId"`
	TotalPrice   decimal.Decimal `db:"total_price" json:"totalPrice"`
	DeliveryTime string          `db:"delivery_time" json:"deliveryTime"`
	DeliveryMode string          `db:"delivery_mode" json:"deliveryMode"`
	Notes        string          `db:"notes" json:"notes,omitempty"`
	Status       string          `db:"status" json:"status"` // pending | accepted | rejected
	CreatedAt    string          `db:"created_at" json:"createdAt"`
	UpdatedAt    string          `db:"updated_at" json:"updatedAt,omitempty"`
}
