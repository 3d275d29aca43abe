package models

// DonationInput is the payload for registering donated goods. Quantity must
// be positive; ExpiryDate, when present, overwrites the item's current one.
type DonationInput struct {
	Name       string  `json:"name" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required"`
	ExpiryDate string  `json:"expiry_date"`
	Donor      Contact `json:"donor"`
	Notes      string  `json:"notes"`
}

type PickupInput struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	Recipient Contact `json:"recipient"`
	Notes     string  `json:"notes"`
}

type BatchDonationRequest struct {
	Items []DonationInput `json:"items" binding:"required"`
}

type BatchPickupRequest struct {
	Recipient Contact          `json:"recipient"`
	Notes     string           `json:"notes"`
	Items     []BatchPickupRow `json:"items" binding:"required"`
}

type BatchPickupRow struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type AdjustStockRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

type SafetyStockRequest struct {
	SafetyStock int `json:"safety_stock"`
}

// RecordUpdate carries the corrected fields of a derived record edit. The
// contact is the donor for donation records, the recipient for pickups.
type RecordUpdate struct {
	Quantity int     `json:"quantity" binding:"required"`
	Contact  Contact `json:"contact"`
	Notes    string  `json:"notes"`
}

// EditItemInput rewrites an item's descriptive fields and absolute quantity.
type EditItemInput struct {
	Name       string `json:"name" binding:"required"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date"`
	Notes      string `json:"notes"`
}
