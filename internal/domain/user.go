package domain

const (
	RoleVendor   = "VENDOR"
	RoleSupplier = "SUPPLIER"
)

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"` // VENDOR | SUPPLIER
}

// Identity is the authenticated caller. Services take it explicitly on every call.
type Identity struct {
	UserID string
	Role   string
}

func (u *User) Identity() Identity { return Identity{UserID: u.ID, Role: u.Role} }
