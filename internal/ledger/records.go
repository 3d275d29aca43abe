package ledger

import (
	"sort"
	"strings"

	"github.com/YC815/Miaoli/pkg/models"
)

// Derived record views. Records are rebuilt from the operation logs on every
// call and sorted newest first; two calls without an intervening mutation
// yield identical lists.

func deriveDonationRecords(items []models.Item, filter models.RecordFilter) []models.DonationRecord {
	records := []models.DonationRecord{}
	for _, item := range items {
		for _, op := range item.Operations {
			if op.Type != models.OperationDonation {
				continue
			}
			if !recordMatches(item.Name, op.Notes, contactName(op.Donor), op.Date, filter) {
				continue
			}
			records = append(records, models.DonationRecord{
				OperationID: op.ID,
				ItemName:    item.Name,
				Quantity:    op.Quantity,
				Date:        op.Date,
				Notes:       op.Notes,
				Donor:       cloneContact(op.Donor),
				Timestamp:   op.Timestamp,
			})
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records
}

func derivePickupRecords(items []models.Item, filter models.RecordFilter) []models.PickupRecord {
	records := []models.PickupRecord{}
	for _, item := range items {
		for _, op := range item.Operations {
			if op.Type != models.OperationPickup {
				continue
			}
			if !recordMatches(item.Name, op.Notes, contactName(op.Recipient), op.Date, filter) {
				continue
			}
			if filter.Unit != "" && contactName(op.Recipient) != filter.Unit {
				continue
			}
			records = append(records, models.PickupRecord{
				OperationID: op.ID,
				ItemName:    item.Name,
				Quantity:    op.Quantity,
				Date:        op.Date,
				Notes:       op.Notes,
				Recipient:   cloneContact(op.Recipient),
				Timestamp:   op.Timestamp,
			})
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records
}

// recordMatches applies the shared filter fields. Date bounds are inclusive;
// YYYY-MM-DD strings compare correctly as plain strings.
func recordMatches(itemName, notes, contact, date string, filter models.RecordFilter) bool {
	if filter.Search != "" {
		term := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(itemName), term) &&
			!strings.Contains(strings.ToLower(notes), term) &&
			!strings.Contains(strings.ToLower(contact), term) {
			return false
		}
	}
	if filter.DateFrom != "" && date < filter.DateFrom {
		return false
	}
	if filter.DateTo != "" && date > filter.DateTo {
		return false
	}
	return true
}

func contactName(c *models.Contact) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func cloneContact(c *models.Contact) *models.Contact {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
