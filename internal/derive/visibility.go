package derive

// NeedVisible is the service-area predicate: exact PIN match, or either side unset.
// There is no radius logic.
func NeedVisible(supplierPIN, vendorPIN string) bool {
	if supplierPIN == "" || vendorPIN == "" {
		return true
	}
	return supplierPIN == vendorPIN
}

// PinnedNeed is anything that knows its vendor's PIN.
type PinnedNeed interface {
	VendorPIN() string
}

// FilterVisibleNeeds keeps the needs visible to a supplier serving supplierPIN, preserving order.
func FilterVisibleNeeds[T PinnedNeed](supplierPIN string, needs []T) []T {
	out := make([]T, 0, len(needs))
	for _, n := range needs {
		if NeedVisible(supplierPIN, n.VendorPIN()) {
			out = append(out, n)
		}
	}
	return out
}
