package models

import "time"

// DonationRecord is a reporting projection of one donation operation. It has
// no storage of its own; OperationID points back at the source log entry.
type DonationRecord struct {
	OperationID string    `json:"operation_id"`
	ItemName    string    `json:"item_name"`
	Quantity    int       `json:"quantity"`
	Date        string    `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	Donor       *Contact  `json:"donor,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// PickupRecord is the pickup counterpart of DonationRecord.
type PickupRecord struct {
	OperationID string    `json:"operation_id"`
	ItemName    string    `json:"item_name"`
	Quantity    int       `json:"quantity"`
	Date        string    `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	Recipient   *Contact  `json:"recipient,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// RecordFilter narrows derived record queries. Zero value matches everything.
type RecordFilter struct {
	Search   string `form:"search"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Unit     string `form:"unit"`
}
