package ledger

import (
	"testing"
	"time"

	"github.com/YC815/Miaoli/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryReport(t *testing.T) {
	l, _ := newTestLedger(t)

	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 3}))
	require.NoError(t, l.Donate(models.DonationInput{Name: "Salt", Quantity: 40, ExpiryDate: "2024-03-01"}))
	require.NoError(t, l.Donate(models.DonationInput{Name: "Winter Blankets", Quantity: 20}))

	report := l.InventoryReport()

	assert.Equal(t, len(defaultCatalog)+1, report.TotalItems)
	assert.Equal(t, 63, report.TotalQuantity)

	essentials := report.Categories["Daily Essentials"]
	assert.Equal(t, len(defaultCatalog), essentials.Count)
	assert.Equal(t, 43, essentials.Quantity)
	general := report.Categories["General"]
	assert.Equal(t, 1, general.Count)
	assert.Equal(t, 20, general.Quantity)

	require.Len(t, report.LowStockItems, 1)
	assert.Equal(t, "Rice", report.LowStockItems[0].Name)
	require.Len(t, report.ExpiredItems, 1)
	assert.Equal(t, "Salt", report.ExpiredItems[0].Name)
	assert.Empty(t, report.ExpiringItems)
}

func TestDistributionReport(t *testing.T) {
	l, clock := newTestLedger(t)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 50}))
	require.NoError(t, l.Donate(models.DonationInput{Name: "Salt", Quantity: 50}))

	require.NoError(t, l.Pickup(models.PickupInput{
		Name: "Rice", Quantity: 10, Recipient: models.Contact{Name: "Shelter A"},
	}))
	require.NoError(t, l.Pickup(models.PickupInput{
		Name: "Salt", Quantity: 4, Recipient: models.Contact{Name: "Shelter A"},
	}))
	clock.Advance(24 * time.Hour)
	require.NoError(t, l.Pickup(models.PickupInput{
		Name: "Rice", Quantity: 6, Recipient: models.Contact{Name: "Shelter B"},
	}))

	report := l.DistributionReport(models.RecordFilter{})

	assert.Equal(t, 3, report.TotalRecords)
	assert.Equal(t, 20, report.TotalQuantity)

	assert.Equal(t, models.DistributionStat{Count: 2, Quantity: 14}, report.DailyStats["2024-03-15"])
	assert.Equal(t, models.DistributionStat{Count: 1, Quantity: 6}, report.DailyStats["2024-03-16"])
	assert.Equal(t, models.DistributionStat{Count: 2, Quantity: 14}, report.UnitStats["Shelter A"])
	assert.Equal(t, models.DistributionStat{Count: 2, Quantity: 16}, report.ItemStats["Rice"])

	require.Len(t, report.TopItems, 2)
	assert.Equal(t, "Rice", report.TopItems[0].Name)
	require.Len(t, report.TopUnits, 2)
	assert.Equal(t, "Shelter A", report.TopUnits[0].Name)
}

func TestDistributionReportFiltersByUnit(t *testing.T) {
	l, _ := newTestLedger(t)
	require.NoError(t, l.Donate(models.DonationInput{Name: "Rice", Quantity: 50}))
	require.NoError(t, l.Pickup(models.PickupInput{
		Name: "Rice", Quantity: 10, Recipient: models.Contact{Name: "Shelter A"},
	}))
	require.NoError(t, l.Pickup(models.PickupInput{
		Name: "Rice", Quantity: 6, Recipient: models.Contact{Name: "Shelter B"},
	}))

	report := l.DistributionReport(models.RecordFilter{Unit: "Shelter B"})
	assert.Equal(t, 1, report.TotalRecords)
	assert.Equal(t, 6, report.TotalQuantity)
	assert.Len(t, report.UnitStats, 1)
}

func TestRankStatsTieBreaksByName(t *testing.T) {
	stats := map[string]models.DistributionStat{
		"b": {Count: 1, Quantity: 5},
		"a": {Count: 2, Quantity: 5},
		"c": {Count: 1, Quantity: 9},
	}

	ranked := rankStats(stats, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "c", ranked[0].Name)
	assert.Equal(t, "a", ranked[1].Name)
}
