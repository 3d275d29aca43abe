package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/YC815/Miaoli/internal/storage"
	custom_error "github.com/YC815/Miaoli/pkg/errors"
	"github.com/YC815/Miaoli/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("op-%04d", n)
	}
}

func newTestLedger(t *testing.T) (*Ledger, *testClock) {
	t.Helper()
	clock := &testClock{current: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	l, err := New(storage.NewMemoryStore(), zap.NewNop(), WithClock(clock.Now), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	return l, clock
}

func TestNewSeedsDefaultCatalog(t *testing.T) {
	store := storage.NewMemoryStore()
	clock := &testClock{current: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}

	l, err := New(store, zap.NewNop(), WithClock(clock.Now))
	require.NoError(t, err)

	items := l.Items()
	assert.Len(t, items, len(defaultCatalog))
	for _, item := range items {
		assert.Equal(t, 0, item.Quantity)
		assert.Equal(t, DefaultSafetyStock, item.SafetyStock)
		assert.Equal(t, DefaultUnit, item.Unit)
		assert.Equal(t, "2024-03-15", item.CreatedDate)
	}

	// The seed is written back, so a second ledger over the same store
	// loads the same collection instead of reseeding.
	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, persisted, len(defaultCatalog))
}

func TestDonateMergesIntoExistingItem(t *testing.T) {
	l, _ := newTestLedger(t)

	require.NoError(t, l.Donate(models.DonationInput{
		Name:     "Rice",
		Quantity: 10,
		Donor:    models.Contact{Name: "Mrs. Chen"},
	}))

	item, err := l.Item("Rice")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
	require.Len(t, item.Operations, 1)
	assert.Equal(t, models.OperationDonation, item.Operations[0].Type)
	assert.Equal(t, 10, item.Operations[0].Quantity)
	require.NotNil(t, item.Operations[0].Donor)
	assert.Equal(t, "Mrs. Chen", item.Operations[0].Donor.Name)

	require.NoError(t, l.Donate(models.DonationInput{
		Name:     "Rice",
		Quantity: 5,
		Donor:    models.Contact{Name: "Mr. Lin"},
	}))

	item, err = l.Item("Rice")
	require.NoError(t, err)
	assert.Equal(t, 15, item.Quantity)
	require.Len(t, item.Operations, 2)
	assert.Equal(t, models.OperationDonation, item.Operations[1].Type)
}

func TestDonateCreatesUnknownItem(t *testing.T) {
	l, _ := newTestLedger(t)

	require.NoError(t, l.Donate(models.DonationInput{
		Name:     "Winter Blankets",
		Quantity: 4,
		Donor:    models.Contact{Name: "Community Church"},
	}))

	item, err := l.Item("Winter Blankets")
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, "General", item.Category)
	assert.Equal(t, DefaultSafetyStock, item.SafetyStock)
	require.Len(t, item.Operations, 1)
}

func TestDonateOverwritesExpiryDate(t *testing.T) {
	l, _ := newTestLedger(t)

	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 3, ExpiryDate: "2024-06-01"}))
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 3, ExpiryDate: "2024-09-01"}))

	item, err := l.Item("Rice")
	require.NoError(t, err)
	assert.Equal(t, "2024-09-01", item.ExpiryDate)
}

func TestDonateRejectsInvalidInput(t *testing.T) {
	l, _ := newTestLedger(t)

	tests := []struct {
		name  string
		input models.DonationInput
	}{
		{"empty name", models.DonationInput{Name: "  ", Quantity: 5}},
		{"zero quantity", models.DonationInput{Name: "Rice", Quantity: 0}},
		{"negative quantity", models.DonationInput{Name: "Rice", Quantity: -2}},
		{"bad expiry date", models.DonationInput{Name: "Rice", Quantity: 5, ExpiryDate: "06/01/2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.Donate(tt.input)
			var verr *custom_error.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestPickupInsufficientStockLeavesStateUntouched(t *testing.T) {
	l, _ := newTestLedger(t)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 15}))

	err := l.Pickup(models.PickupInput{
		Name:      "Rice",
		Quantity:  20,
		Recipient: models.Contact{Name: "Shelter A"},
	})
	var serr *custom_error.InsufficientStockError
	require.ErrorAs(t, err, &serr)

	item, err := l.Item("Rice")
	require.NoError(t, err)
	assert.Equal(t, 15, item.Quantity)
	assert.Len(t, item.Operations, 1)
}

func TestPickupToZeroExcludedFromLowStock(t *testing.T) {
	l, _ := newTestLedger(t)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 15}))

	require.NoError(t, l.Pickup(models.PickupInput{
		Name:      "Rice",
		Quantity:  15,
		Recipient: models.Contact{Name: "Shelter A"},
	}))

	item, err := l.Item("Rice")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
	require.Len(t, item.Operations, 2)
	assert.Equal(t, models.OperationPickup, item.Operations[1].Type)
	assert.Equal(t, 15, item.Operations[1].Quantity)

	// Zero stock is out, not low.
	assert.Equal(t, 0, l.Stats().LowStock)
}

func TestPickupUnknownItem(t *testing.T) {
	l, _ := newTestLedger(t)

	err := l.Pickup(models.PickupInput{
		Name:      "Plutonium",
		Quantity:  1,
		Recipient: models.Contact{Name: "Shelter A"},
	})
	var nerr *custom_error.NotFoundError
	assert.ErrorAs(t, err, &nerr)
}

func TestAdjustStockRecordsDelta(t *testing.T) {
	l, _ := newTestLedger(t)

	require.NoError(t, l.AdjustStock("Rice", 8, "restock"))

	item, err := l.Item("Rice")
	require.NoError(t, err)
	assert.Equal(t, 8, item.Quantity)
	require.Len(t, item.Operations, 1)
	op := item.Operations[0]
	assert.Equal(t, models.OperationAdjustment, op.Type)
	assert.Equal(t, 8, op.Quantity)
	assert.Contains(t, op.Notes, "0 → 8 (restock)")

	// Adjusting down records a negative delta.
	require.NoError(t, l.AdjustStock("Rice", 3, ""))
	item, err = l.Item("Rice")
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, -5, item.Operations[1].Quantity)
	assert.Contains(t, item.Operations[1].Notes, "8 → 3")
}

func TestAdjustStockRejectsNegative(t *testing.T) {
	l, _ := newTestLedger(t)

	err := l.AdjustStock("Rice", -1, "")
	var verr *custom_error.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateSafetyStockLogsNoOperation(t *testing.T) {
	l, _ := newTestLedger(t)

	require.NoError(t, l.UpdateSafetyStock("Rice", 12))

	item, err := l.Item("Rice")
	require.NoError(t, err)
	assert.Equal(t, 12, item.SafetyStock)
	assert.Empty(t, item.Operations)
}

func TestEditItemRenameCollision(t *testing.T) {
	l, _ := newTestLedger(t)

	err := l.EditItem("Rice", models.EditItemInput{Name: "Salt", Quantity: 0})
	var verr *custom_error.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestEditItemRewritesFields(t *testing.T) {
	l, _ := newTestLedger(t)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 10}))

	require.NoError(t, l.EditItem("Rice", models.EditItemInput{
		Name:       "Jasmine Rice",
		Quantity:   7,
		ExpiryDate: "2024-12-31",
		Notes:      "relabelled",
	}))

	_, err := l.Item("Rice")
	var nerr *custom_error.NotFoundError
	assert.ErrorAs(t, err, &nerr)

	item, err := l.Item("Jasmine Rice")
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)
	assert.Equal(t, "2024-12-31", item.ExpiryDate)
	require.Len(t, item.Operations, 2)
	edit := item.Operations[1]
	assert.Equal(t, models.OperationEdit, edit.Type)
	assert.Equal(t, 7, edit.Quantity)
}

func TestAddCatalogItem(t *testing.T) {
	l, _ := newTestLedger(t)

	require.NoError(t, l.AddCatalogItem("Sleeping Bags"))

	item, err := l.Item("Sleeping Bags")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, "Custom", item.Category)
	require.Len(t, item.Operations, 1)
	assert.Equal(t, models.OperationCreate, item.Operations[0].Type)

	err = l.AddCatalogItem("Sleeping Bags")
	var verr *custom_error.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDeleteItemRemovesLog(t *testing.T) {
	l, _ := newTestLedger(t)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 10}))

	require.NoError(t, l.DeleteItem("Rice"))

	_, err := l.Item("Rice")
	var nerr *custom_error.NotFoundError
	assert.ErrorAs(t, err, &nerr)
	assert.Empty(t, l.DonationRecords(models.RecordFilter{}))
}

func TestDonateBatchContinuesPastFailures(t *testing.T) {
	l, _ := newTestLedger(t)

	results := l.DonateBatch([]models.DonationInput{
		{Name: "Rice", Quantity: 10},
		{Name: "", Quantity: 5},
		{Name: "Salt", Quantity: 2},
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Message)
	assert.True(t, results[2].Success)

	item, err := l.Item("Salt")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
}

func TestPickupBatchSharesRecipient(t *testing.T) {
	l, _ := newTestLedger(t)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 10}))
	require.NoError(t, l.Donate(models.DonationInput{Name: "Salt", Quantity: 1}))

	results := l.PickupBatch(models.BatchPickupRequest{
		Recipient: models.Contact{Name: "Shelter A"},
		Items: []models.BatchPickupRow{
			{Name: "Rice", Quantity: 4},
			{Name: "Salt", Quantity: 5},
		},
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)

	records := l.PickupRecords(models.RecordFilter{})
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Recipient)
	assert.Equal(t, "Shelter A", records[0].Recipient.Name)
}

func TestStatsCountsCurrentMonthOnly(t *testing.T) {
	l, clock := newTestLedger(t)

	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 10}))
	require.NoError(t, l.Pickup(models.PickupInput{
		Name: "Rice", Quantity: 2, Recipient: models.Contact{Name: "Shelter A"},
	}))

	stats := l.Stats()
	assert.Equal(t, 1, stats.MonthlyDonation)
	assert.Equal(t, 1, stats.MonthlyDistribution)
	assert.Equal(t, len(defaultCatalog), stats.TotalItems)

	// Crossing the month boundary drops both from the monthly counts.
	clock.Advance(31 * 24 * time.Hour)
	stats = l.Stats()
	assert.Equal(t, 0, stats.MonthlyDonation)
	assert.Equal(t, 0, stats.MonthlyDistribution)
}

func TestStatsLowStockRule(t *testing.T) {
	l, _ := newTestLedger(t)

	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 5}))  // at threshold: low
	require.NoError(t, l.Donate(models.DonationInput{Name: "Salt", Quantity: 6})) // above: not low

	assert.Equal(t, 1, l.Stats().LowStock)
}

func TestRecordsSortedNewestFirst(t *testing.T) {
	l, clock := newTestLedger(t)

	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 1}))
	clock.Advance(time.Hour)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Salt", Quantity: 2}))
	clock.Advance(time.Hour)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 3}))

	records := l.DonationRecords(models.RecordFilter{})
	require.Len(t, records, 3)
	assert.Equal(t, 3, records[0].Quantity)
	assert.Equal(t, 2, records[1].Quantity)
	assert.Equal(t, 1, records[2].Quantity)

	// Idempotent: a second derivation without mutations matches.
	assert.Equal(t, records, l.DonationRecords(models.RecordFilter{}))
}

func TestRecordFilters(t *testing.T) {
	l, clock := newTestLedger(t)

	require.NoError(t, l.Donate(models.DonationInput{
		Name: "Rice", Quantity: 1, Donor: models.Contact{Name: "Mrs. Chen"},
	}))
	clock.Advance(48 * time.Hour)
	require.NoError(t, l.Donate(models.DonationInput{
		Name: "Salt", Quantity: 2, Notes: "pantry drive",
	}))

	assert.Len(t, l.DonationRecords(models.RecordFilter{Search: "chen"}), 1)
	assert.Len(t, l.DonationRecords(models.RecordFilter{Search: "pantry"}), 1)
	assert.Len(t, l.DonationRecords(models.RecordFilter{Search: "nothing"}), 0)

	// Date bounds are inclusive.
	assert.Len(t, l.DonationRecords(models.RecordFilter{DateFrom: "2024-03-15", DateTo: "2024-03-15"}), 1)
	assert.Len(t, l.DonationRecords(models.RecordFilter{DateFrom: "2024-03-16"}), 1)
	assert.Len(t, l.DonationRecords(models.RecordFilter{DateTo: "2024-03-14"}), 0)
}

func TestPickupRecordUnitFilter(t *testing.T) {
	l, _ := newTestLedger(t)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 10}))

	require.NoError(t, l.Pickup(models.PickupInput{
		Name: "Rice", Quantity: 2, Recipient: models.Contact{Name: "Shelter A"},
	}))
	require.NoError(t, l.Pickup(models.PickupInput{
		Name: "Rice", Quantity: 3, Recipient: models.Contact{Name: "Shelter B"},
	}))

	records := l.PickupRecords(models.RecordFilter{Unit: "Shelter B"})
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Quantity)
}

type failingStore struct {
	inner    *storage.MemoryStore
	failSave bool
}

func (s *failingStore) Load() ([]models.Item, error) {
	return s.inner.Load()
}

func (s *failingStore) Save(items []models.Item) error {
	if s.failSave {
		return custom_error.NewPersistenceError("save", errors.New("disk full"))
	}
	return s.inner.Save(items)
}

func TestFailedSaveLeavesMemoryUnchanged(t *testing.T) {
	store := &failingStore{inner: storage.NewMemoryStore()}
	clock := &testClock{current: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	l, err := New(store, zap.NewNop(), WithClock(clock.Now))
	require.NoError(t, err)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 10}))

	store.failSave = true
	err = l.Donate(models.DonationInput{Name: "Rice", Quantity: 5})
	var perr *custom_error.PersistenceError
	require.ErrorAs(t, err, &perr)

	// Memory still shows the last committed state, and so does the store.
	item, err := l.Item("Rice")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
	assert.Len(t, item.Operations, 1)

	persisted, err := store.Load()
	require.NoError(t, err)
	idx := findItem(persisted, "Rice")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, 10, persisted[idx].Quantity)

	// Recovery: the same mutation succeeds once the store does.
	store.failSave = false
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 5}))
	item, err = l.Item("Rice")
	require.NoError(t, err)
	assert.Equal(t, 15, item.Quantity)
}

func TestItemsReturnsDefensiveCopy(t *testing.T) {
	l, _ := newTestLedger(t)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 10}))

	items := l.Items()
	idx := findItem(items, "Rice")
	require.GreaterOrEqual(t, idx, 0)
	items[idx].Quantity = 999
	items[idx].Operations[0].Quantity = 999

	item, err := l.Item("Rice")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
	assert.Equal(t, 10, item.Operations[0].Quantity)
}
