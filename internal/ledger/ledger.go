// Package ledger owns the in-memory item collection and the invariant that
// every item's quantity equals the cumulative effect of its operation log.
package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/YC815/Miaoli/internal/storage"
	"github.com/YC815/Miaoli/internal/validation"
	custom_error "github.com/YC815/Miaoli/pkg/errors"
	"github.com/YC815/Miaoli/pkg/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Ledger is the sole owner of the item collection. Mutations are staged on a
// deep copy, saved through the gateway, and only then committed in memory, so
// a failed save leaves both the memory and the durable state untouched.
type Ledger struct {
	mu    sync.Mutex
	items []models.Item
	store storage.Gateway
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*Ledger)

// WithClock replaces the wall clock, which stamps operation dates and drives
// the monthly stats and expiry warnings.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

// New loads the collection from the gateway. An empty store is seeded with
// the default catalog and saved back immediately.
func New(store storage.Gateway, log *zap.Logger, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store: store,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}

	items, err := store.Load()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		items = defaultInventory(l.today())
		if err := store.Save(items); err != nil {
			return nil, err
		}
		l.log.Info("seeded default catalog", zap.Int("items", len(items)))
	}
	l.items = items
	return l, nil
}

func (l *Ledger) today() string {
	return l.now().Format(dateLayout)
}

func (l *Ledger) newOperation(opType models.OperationType, quantity int, notes string) models.Operation {
	return models.Operation{
		ID:        l.newID(),
		Type:      opType,
		Quantity:  quantity,
		Date:      l.today(),
		Timestamp: l.now(),
		Notes:     notes,
	}
}

// commit saves the staged collection and swaps it in on success. The save
// error (a PersistenceError) passes through untouched so callers can retry.
func (l *Ledger) commit(staged []models.Item) error {
	if err := l.store.Save(staged); err != nil {
		l.log.Error("persisting item collection failed", zap.Error(err))
		return err
	}
	l.items = staged
	return nil
}

func findItem(items []models.Item, name string) int {
	for idx := range items {
		if items[idx].Name == name {
			return idx
		}
	}
	return -1
}

func validationError(errs []string) error {
	return custom_error.NewValidationError("%s", strings.Join(errs, ", "))
}

// Donate merges donated goods into the named item, or creates the item on
// first donation of a new name. The donation is appended to the item's log.
func (l *Ledger) Donate(input models.DonationInput) error {
	if errs := validation.ValidateItem(input); len(errs) > 0 {
		return validationError(errs)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.donateLocked(input)
}

func (l *Ledger) donateLocked(input models.DonationInput) error {
	staged := models.CloneItems(l.items)

	op := l.newOperation(models.OperationDonation, input.Quantity, input.Notes)
	donor := input.Donor
	op.Donor = &donor

	if idx := findItem(staged, input.Name); idx >= 0 {
		item := &staged[idx]
		item.Quantity += input.Quantity
		if input.ExpiryDate != "" {
			item.ExpiryDate = input.ExpiryDate
		}
		item.Operations = append(item.Operations, op)
		item.LastUpdated = l.today()
	} else {
		staged = append(staged, models.Item{
			Name:        input.Name,
			Category:    categoryFor(input.Name),
			Unit:        DefaultUnit,
			Quantity:    input.Quantity,
			SafetyStock: DefaultSafetyStock,
			ExpiryDate:  input.ExpiryDate,
			Notes:       input.Notes,
			CreatedDate: l.today(),
			LastUpdated: l.today(),
			Operations:  []models.Operation{op},
		})
	}

	return l.commit(staged)
}

// DonateBatch processes every entry even when some fail, reporting a
// per-entry outcome list.
func (l *Ledger) DonateBatch(inputs []models.DonationInput) []models.BatchResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	results := make([]models.BatchResult, 0, len(inputs))
	for _, input := range inputs {
		result := models.BatchResult{ItemName: input.Name, Quantity: input.Quantity}
		if errs := validation.ValidateItem(input); len(errs) > 0 {
			result.Message = strings.Join(errs, ", ")
		} else if err := l.donateLocked(input); err != nil {
			result.Message = err.Error()
		} else {
			result.Success = true
			result.Message = "donation recorded"
		}
		results = append(results, result)
	}
	return results
}

// Pickup hands out stock to a recipient unit. Fails with InsufficientStock
// when the requested quantity exceeds what is on hand; nothing is appended in
// that case.
func (l *Ledger) Pickup(input models.PickupInput) error {
	if errs := validation.ValidatePickup(input); len(errs) > 0 {
		return validationError(errs)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pickupLocked(input)
}

func (l *Ledger) pickupLocked(input models.PickupInput) error {
	staged := models.CloneItems(l.items)

	idx := findItem(staged, input.Name)
	if idx < 0 {
		return custom_error.NewNotFoundError("item", input.Name)
	}
	item := &staged[idx]
	if input.Quantity > item.Quantity {
		return custom_error.NewInsufficientStockError(item.Name, item.Quantity, input.Quantity)
	}

	item.Quantity -= input.Quantity
	op := l.newOperation(models.OperationPickup, input.Quantity, input.Notes)
	recipient := input.Recipient
	op.Recipient = &recipient
	item.Operations = append(item.Operations, op)
	item.LastUpdated = l.today()

	return l.commit(staged)
}

// PickupBatch distributes several items to one recipient in a single pass,
// continuing past per-item failures.
func (l *Ledger) PickupBatch(req models.BatchPickupRequest) []models.BatchResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	results := make([]models.BatchResult, 0, len(req.Items))
	for _, row := range req.Items {
		result := models.BatchResult{ItemName: row.Name, Quantity: row.Quantity}
		input := models.PickupInput{
			Name:      row.Name,
			Quantity:  row.Quantity,
			Recipient: req.Recipient,
			Notes:     req.Notes,
		}
		if errs := validation.ValidatePickup(input); len(errs) > 0 {
			result.Message = strings.Join(errs, ", ")
		} else if err := l.pickupLocked(input); err != nil {
			result.Message = err.Error()
		} else {
			result.Success = true
			result.Message = "distributed"
		}
		results = append(results, result)
	}
	return results
}

// AdjustStock sets the item's quantity to an absolute value and records the
// signed delta as an adjustment operation.
func (l *Ledger) AdjustStock(name string, newQuantity int, reason string) error {
	if newQuantity < 0 {
		return custom_error.NewValidationError("adjusted quantity must not be negative")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	staged := models.CloneItems(l.items)
	idx := findItem(staged, name)
	if idx < 0 {
		return custom_error.NewNotFoundError("item", name)
	}
	item := &staged[idx]

	notes := fmt.Sprintf("stock adjusted: %d → %d", item.Quantity, newQuantity)
	if reason != "" {
		notes += fmt.Sprintf(" (%s)", reason)
	}

	delta := newQuantity - item.Quantity
	item.Quantity = newQuantity
	item.Operations = append(item.Operations, l.newOperation(models.OperationAdjustment, delta, notes))
	item.LastUpdated = l.today()

	return l.commit(staged)
}

// UpdateSafetyStock is a pure metadata update; no operation is logged.
func (l *Ledger) UpdateSafetyStock(name string, value int) error {
	if value < 0 {
		return custom_error.NewValidationError("safety stock must not be negative")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	staged := models.CloneItems(l.items)
	idx := findItem(staged, name)
	if idx < 0 {
		return custom_error.NewNotFoundError("item", name)
	}
	staged[idx].SafetyStock = value
	staged[idx].LastUpdated = l.today()

	return l.commit(staged)
}

// EditItem rewrites an item's descriptive fields and absolute quantity,
// recording an edit operation that carries the new total (not a delta).
func (l *Ledger) EditItem(name string, input models.EditItemInput) error {
	switch {
	case validation.IsEmpty(input.Name):
		return custom_error.NewValidationError("item name must not be empty")
	case input.Quantity < 0:
		return custom_error.NewValidationError("quantity must not be negative")
	case input.ExpiryDate != "" && !validation.IsValidDate(input.ExpiryDate):
		return custom_error.NewValidationError("expiry date is not a valid date")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	staged := models.CloneItems(l.items)
	idx := findItem(staged, name)
	if idx < 0 {
		return custom_error.NewNotFoundError("item", name)
	}
	if input.Name != name && findItem(staged, input.Name) >= 0 {
		return custom_error.NewValidationError("item %q already exists", input.Name)
	}

	item := &staged[idx]
	item.Name = input.Name
	item.Quantity = input.Quantity
	item.ExpiryDate = input.ExpiryDate
	item.Notes = input.Notes
	item.Operations = append(item.Operations, l.newOperation(models.OperationEdit, input.Quantity, "item edited"))
	item.LastUpdated = l.today()

	return l.commit(staged)
}

// AddCatalogItem registers a custom zero-quantity catalog entry.
func (l *Ledger) AddCatalogItem(name string) error {
	if validation.IsEmpty(name) {
		return custom_error.NewValidationError("item name must not be empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if findItem(l.items, name) >= 0 {
		return custom_error.NewValidationError("item %q already exists", name)
	}

	staged := models.CloneItems(l.items)
	staged = append(staged, models.Item{
		Name:        name,
		Category:    categoryCustom,
		Unit:        DefaultUnit,
		Quantity:    0,
		SafetyStock: DefaultSafetyStock,
		Notes:       "custom item",
		CreatedDate: l.today(),
		LastUpdated: l.today(),
		Operations:  []models.Operation{l.newOperation(models.OperationCreate, 0, "catalog entry created")},
	})

	return l.commit(staged)
}

// DeleteItem removes the item and its whole operation log. Irreversible;
// callers confirm before getting here.
func (l *Ledger) DeleteItem(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.deleteItemLocked(name)
}

func (l *Ledger) deleteItemLocked(name string) error {
	idx := findItem(l.items, name)
	if idx < 0 {
		return custom_error.NewNotFoundError("item", name)
	}

	staged := models.CloneItems(l.items)
	staged = append(staged[:idx], staged[idx+1:]...)
	return l.commit(staged)
}

// Items returns a defensive copy of the collection.
func (l *Ledger) Items() []models.Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	return models.CloneItems(l.items)
}

func (l *Ledger) Item(name string) (models.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := findItem(l.items, name)
	if idx < 0 {
		return models.Item{}, custom_error.NewNotFoundError("item", name)
	}
	return l.items[idx].Clone(), nil
}

func (l *Ledger) DonationRecords(filter models.RecordFilter) []models.DonationRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return deriveDonationRecords(l.items, filter)
}

func (l *Ledger) PickupRecords(filter models.RecordFilter) []models.PickupRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return derivePickupRecords(l.items, filter)
}

// Stats recomputes the dashboard counters against the current wall clock, so
// the monthly figures roll over as the clock crosses a month boundary.
func (l *Ledger) Stats() models.Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	month := l.now().Format("2006-01")
	stats := models.Stats{TotalItems: len(l.items)}

	for _, item := range l.items {
		for _, op := range item.Operations {
			if !strings.HasPrefix(op.Date, month) {
				continue
			}
			switch op.Type {
			case models.OperationDonation:
				stats.MonthlyDonation++
			case models.OperationPickup:
				stats.MonthlyDistribution++
			}
		}
		if item.Quantity > 0 && item.Quantity <= item.SafetyStock {
			stats.LowStock++
		}
	}
	return stats
}

// Warnings evaluates stock and expiry alerts for every item.
func (l *Ledger) Warnings() []models.Warning {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := l.now()
	warnings := []models.Warning{}
	for _, item := range l.items {
		warnings = append(warnings, EvaluateAlerts(item, today)...)
	}
	return warnings
}
