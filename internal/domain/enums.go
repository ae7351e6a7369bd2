package domain

var (
	VendorBusinessTypes = []string{"Tea stall", "Fruit cart", "Snack vendor", "Vegetable seller", "Grocery", "Other"}
	VendorDeliveryPrefs = []string{"home", "pickup", "either"}
	Languages           = []string{"hindi", "english", "marathi", "other"}

	SupplierBusinessTypes = []string{"Wholesaler", "Farmer", "Distributor", "Manufacturer", "Importer", "Other"}
	ProductCategories     = []string{"Vegetables", "Fruits", "Spices", "Grains", "Dairy", "Meat", "Beverages", "Snacks", "Bakery", "Frozen Foods"}
	PricingPreferences    = []string{"fixed", "dynamic"}

	InventoryCategories = []string{"Fruits", "Vegetables", "Grains", "Spices", "Dairy", "Meat", "Beverages", "Snacks", "Bakery", "Frozen Foods"}
	InventoryUnits      = []string{"kg", "liter", "pieces", "dozen", "pack", "box"}

	// Shared by supplier profiles, inventory items and offers.
	DeliveryModes = []string{"Door Delivery", "Bulk Pickup", "Warehouse Pickup", "Express Delivery", "Scheduled Delivery"}

	Urgencies = []string{"low", "medium", "high"}
)
