package ledger

import (
	"strconv"
	"strings"

	"github.com/YC815/Miaoli/internal/validation"
	custom_error "github.com/YC815/Miaoli/pkg/errors"
	"github.com/YC815/Miaoli/pkg/models"
)

// Reconciler translates edits and deletes of derived donation/pickup records
// into mutations of the underlying operations. Records carry their source
// operation's id, so resolution is normally a direct lookup; collections
// written before ids existed fall back to structural matching.
type Reconciler struct {
	ledger *Ledger
}

func NewReconciler(l *Ledger) *Reconciler {
	return &Reconciler{ledger: l}
}

// DeleteOutcome reports what a record deletion left behind. ItemEmptied is a
// hint that the owning item has no operations and zero quantity; deleting the
// item itself stays the caller's decision.
type DeleteOutcome struct {
	ItemName    string `json:"item"`
	ItemEmptied bool   `json:"item_emptied"`
}

// locateOperation finds the operation a derived record points at. With an id
// the scan is exact. Without one, the first operation matching the record's
// type, date and owning item wins, in item order then log order; deletes
// additionally require the quantity to match to tell apart same-day entries.
func locateOperation(items []models.Item, opType models.OperationType, opID, itemName, date string, quantity int, matchQuantity bool) (int, int) {
	if opID != "" {
		for i := range items {
			for j := range items[i].Operations {
				if items[i].Operations[j].ID == opID {
					return i, j
				}
			}
		}
		return -1, -1
	}

	for i := range items {
		if items[i].Name != itemName {
			continue
		}
		for j, op := range items[i].Operations {
			if op.Type != opType || op.Date != date {
				continue
			}
			if matchQuantity && op.Quantity != quantity {
				continue
			}
			return i, j
		}
	}
	return -1, -1
}

// EditDonation corrects a past donation in place: the signed quantity
// difference is applied to the item's stock and the operation is overwritten
// rather than appended, since an edit fixes a mistake instead of recording a
// new event.
func (r *Reconciler) EditDonation(recordIndex int, update models.RecordUpdate) error {
	if errs := validation.ValidateRecordUpdate(update); len(errs) > 0 {
		return custom_error.NewValidationError("%s", strings.Join(errs, ", "))
	}

	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	records := deriveDonationRecords(l.items, models.RecordFilter{})
	if recordIndex < 0 || recordIndex >= len(records) {
		return custom_error.NewNotFoundError("donation record", strconv.Itoa(recordIndex))
	}
	record := records[recordIndex]

	staged := models.CloneItems(l.items)
	itemIdx, opIdx := locateOperation(staged, models.OperationDonation, record.OperationID, record.ItemName, record.Date, record.Quantity, false)
	if itemIdx < 0 {
		return custom_error.NewNotFoundError("donation operation", record.ItemName+" on "+record.Date)
	}

	item := &staged[itemIdx]
	diff := update.Quantity - record.Quantity
	if item.Quantity+diff < 0 {
		return custom_error.NewInsufficientStockError(item.Name, item.Quantity, -diff)
	}
	item.Quantity += diff

	op := &item.Operations[opIdx]
	op.Quantity = update.Quantity
	op.Notes = update.Notes
	donor := update.Contact
	op.Donor = &donor
	op.LastModified = l.today()
	item.LastUpdated = l.today()

	return l.commit(staged)
}

// EditPickup is the pickup counterpart: increasing a pickup takes more stock,
// so the difference is subtracted instead of added.
func (r *Reconciler) EditPickup(recordIndex int, update models.RecordUpdate) error {
	if errs := validation.ValidateRecordUpdate(update); len(errs) > 0 {
		return custom_error.NewValidationError("%s", strings.Join(errs, ", "))
	}

	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	records := derivePickupRecords(l.items, models.RecordFilter{})
	if recordIndex < 0 || recordIndex >= len(records) {
		return custom_error.NewNotFoundError("pickup record", strconv.Itoa(recordIndex))
	}
	record := records[recordIndex]

	staged := models.CloneItems(l.items)
	itemIdx, opIdx := locateOperation(staged, models.OperationPickup, record.OperationID, record.ItemName, record.Date, record.Quantity, false)
	if itemIdx < 0 {
		return custom_error.NewNotFoundError("pickup operation", record.ItemName+" on "+record.Date)
	}

	item := &staged[itemIdx]
	diff := update.Quantity - record.Quantity
	if item.Quantity-diff < 0 {
		return custom_error.NewInsufficientStockError(item.Name, item.Quantity, diff)
	}
	item.Quantity -= diff

	op := &item.Operations[opIdx]
	op.Quantity = update.Quantity
	op.Notes = update.Notes
	recipient := update.Contact
	op.Recipient = &recipient
	op.LastModified = l.today()
	item.LastUpdated = l.today()

	return l.commit(staged)
}

// DeleteDonation removes the donation operation and takes its quantity back
// out of stock. Rejected when the stock was already given out.
func (r *Reconciler) DeleteDonation(recordIndex int) (DeleteOutcome, error) {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	records := deriveDonationRecords(l.items, models.RecordFilter{})
	if recordIndex < 0 || recordIndex >= len(records) {
		return DeleteOutcome{}, custom_error.NewNotFoundError("donation record", strconv.Itoa(recordIndex))
	}
	record := records[recordIndex]

	staged := models.CloneItems(l.items)
	itemIdx, opIdx := locateOperation(staged, models.OperationDonation, record.OperationID, record.ItemName, record.Date, record.Quantity, true)
	if itemIdx < 0 {
		return DeleteOutcome{}, custom_error.NewNotFoundError("donation operation", record.ItemName+" on "+record.Date)
	}

	item := &staged[itemIdx]
	if item.Quantity < record.Quantity {
		return DeleteOutcome{}, custom_error.NewInsufficientStockError(item.Name, item.Quantity, record.Quantity)
	}
	item.Quantity -= record.Quantity
	item.Operations = append(item.Operations[:opIdx], item.Operations[opIdx+1:]...)
	item.LastUpdated = l.today()

	outcome := DeleteOutcome{
		ItemName:    item.Name,
		ItemEmptied: len(item.Operations) == 0 && item.Quantity == 0,
	}

	if err := l.commit(staged); err != nil {
		return DeleteOutcome{}, err
	}
	return outcome, nil
}

// DeletePickup removes the pickup operation and restores its quantity to
// stock.
func (r *Reconciler) DeletePickup(recordIndex int) error {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	records := derivePickupRecords(l.items, models.RecordFilter{})
	if recordIndex < 0 || recordIndex >= len(records) {
		return custom_error.NewNotFoundError("pickup record", strconv.Itoa(recordIndex))
	}
	record := records[recordIndex]

	staged := models.CloneItems(l.items)
	itemIdx, opIdx := locateOperation(staged, models.OperationPickup, record.OperationID, record.ItemName, record.Date, record.Quantity, true)
	if itemIdx < 0 {
		return custom_error.NewNotFoundError("pickup operation", record.ItemName+" on "+record.Date)
	}

	item := &staged[itemIdx]
	item.Quantity += record.Quantity
	item.Operations = append(item.Operations[:opIdx], item.Operations[opIdx+1:]...)
	item.LastUpdated = l.today()

	return l.commit(staged)
}

// DeleteItem removes an item the reconciler has just emptied. Exposed so the
// record handlers can act on a confirmed ItemEmptied hint without reaching
// into the ledger themselves.
func (r *Reconciler) DeleteItem(name string) error {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.deleteItemLocked(name)
}
