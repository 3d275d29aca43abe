package models

import "time"

type OperationType string

const (
	OperationDonation   OperationType = "donation"
	OperationPickup     OperationType = "pickup"
	OperationAdjustment OperationType = "adjustment"
	OperationEdit       OperationType = "edit"
	OperationCreate     OperationType = "create"
)

// Contact identifies the external party of an operation (donor or recipient).
type Contact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Operation is one entry of an item's append-only log. Quantity semantics
// depend on the type: magnitude moved for donation/pickup, signed delta for
// adjustment, absolute total for edit, zero for create.
type Operation struct {
	ID           string        `json:"id"`
	Type         OperationType `json:"type"`
	Quantity     int           `json:"quantity"`
	Date         string        `json:"date"` // calendar date, YYYY-MM-DD
	Timestamp    time.Time     `json:"timestamp"`
	Notes        string        `json:"notes,omitempty"`
	Donor        *Contact      `json:"donor,omitempty"`
	Recipient    *Contact      `json:"recipient,omitempty"`
	LastModified string        `json:"last_modified,omitempty"`
}

type Item struct {
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Unit        string      `json:"unit"`
	Quantity    int         `json:"quantity"`
	SafetyStock int         `json:"safety_stock"`
	ExpiryDate  string      `json:"expiry_date,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	CreatedDate string      `json:"created_date"`
	LastUpdated string      `json:"last_updated"`
	Operations  []Operation `json:"operations"`
}

func (i Item) Clone() Item {
	clone := i
	clone.Operations = make([]Operation, len(i.Operations))
	for idx, op := range i.Operations {
		if op.Donor != nil {
			donor := *op.Donor
			op.Donor = &donor
		}
		if op.Recipient != nil {
			recipient := *op.Recipient
			op.Recipient = &recipient
		}
		clone.Operations[idx] = op
	}
	return clone
}

func CloneItems(items []Item) []Item {
	clones := make([]Item, len(items))
	for idx, item := range items {
		clones[idx] = item.Clone()
	}
	return clones
}

func (i *Item) CreateLogView() AuditLog {
	return AuditLog{
		Resource:     i.Name,
		ResourceType: "item",
	}
}
