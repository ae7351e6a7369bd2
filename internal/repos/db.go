package repos

import (
	"errors"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every connection to ":memory:" is its own database.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure demo accounts exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('VENDOR','SUPPLIER')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Profiles (keyed by user id)
CREATE TABLE IF NOT EXISTS vendor_profiles(
  user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  full_name TEXT NOT NULL,
  business_type TEXT NOT NULL,
  business_name TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT '',
  pin_code TEXT NOT NULL DEFAULT '',
  preferred_delivery TEXT NOT NULL,
  avg_daily_needs TEXT NOT NULL DEFAULT '[]',
  language TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS supplier_profiles(
  user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  company_name TEXT NOT NULL,
  contact_person TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT '',
  business_type TEXT NOT NULL,
  product_categories TEXT NOT NULL DEFAULT '[]',
  service_area_pin TEXT NOT NULL DEFAULT '',
  delivery_modes TEXT NOT NULL DEFAULT '[]',
  pricing_preference TEXT NOT NULL DEFAULT 'fixed' CHECK (pricing_preference IN ('fixed','dynamic')),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT ''
);

-- Vendor needs: one logical document per vendor, one row per material line
CREATE TABLE IF NOT EXISTS need_lines(
  vendor_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  line_id TEXT NOT NULL,
  name TEXT NOT NULL,
  quantity REAL NOT NULL CHECK (quantity > 0),
  unit TEXT NOT NULL,
  urgency TEXT NOT NULL CHECK (urgency IN ('low','medium','high')),
  preferred_time TEXT NOT NULL DEFAULT '',
  position INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  PRIMARY KEY(vendor_id, line_id)
);
CREATE INDEX IF NOT EXISTS idx_need_lines_vendor ON need_lines(vendor_id, position);

-- Supplier inventory
CREATE TABLE IF NOT EXISTS inventory_items(
  id TEXT PRIMARY KEY,
  supplier_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  quantity REAL NOT NULL CHECK (quantity >= 0),
  unit TEXT NOT NULL DEFAULT '',
  unit_price NUMERIC NOT NULL CHECK (unit_price >= 0),
  expiry_date TEXT NOT NULL DEFAULT '',
  shelf_life INTEGER NULL,
  delivery_options TEXT NOT NULL DEFAULT '[]',
  notes TEXT NOT NULL DEFAULT '',
  is_visible INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inventory_supplier ON inventory_items(supplier_id);

-- Supplier offers; one per (supplier, need)
CREATE TABLE IF NOT EXISTS supplier_offers(
  id TEXT PRIMARY KEY,
  supplier_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  vendor_need_id TEXT NOT NULL,
  total_price NUMERIC NOT NULL CHECK (total_price >= 0),
  delivery_time TEXT NOT NULL,
  delivery_mode TEXT NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','accepted','rejected')),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT '',
  UNIQUE(supplier_id, vendor_need_id)
);
CREATE INDEX IF NOT EXISTS idx_offers_need ON supplier_offers(vendor_need_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures demo vendor and supplier accounts exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-ravi", "ravi@streetsupply.test", "Ravi", "VENDOR", "Passw0rd!"),
		mk("u-meena", "meena@streetsupply.test", "Meena", "VENDOR", "Passw0rd!"),
		mk("u-agro", "agro@streetsupply.test", "Agro Fresh", "SUPPLIER", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("[seed] demo accounts ensured (%d)", len(users))
	return nil
}

// isUniqueViolation matches sqlite's constraint error text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed: UNIQUE")
}
