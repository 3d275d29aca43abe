package ledger

import (
	"sort"

	"github.com/YC815/Miaoli/pkg/models"
)

// InventoryReport aggregates the whole collection for the reporting views:
// category totals plus the low-stock, expired and expiring item lists.
func (l *Ledger) InventoryReport() models.InventoryReport {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := l.now()
	report := models.InventoryReport{
		TotalItems:    len(l.items),
		Categories:    map[string]models.CategoryStat{},
		LowStockItems: []models.Item{},
		ExpiredItems:  []models.Item{},
		ExpiringItems: []models.Item{},
	}

	for _, item := range l.items {
		report.TotalQuantity += item.Quantity

		stat := report.Categories[item.Category]
		stat.Count++
		stat.Quantity += item.Quantity
		report.Categories[item.Category] = stat

		for _, warning := range EvaluateAlerts(item, today) {
			switch warning.Type {
			case models.WarningLowStock:
				report.LowStockItems = append(report.LowStockItems, item.Clone())
			case models.WarningExpired:
				report.ExpiredItems = append(report.ExpiredItems, item.Clone())
			case models.WarningExpiry:
				report.ExpiringItems = append(report.ExpiringItems, item.Clone())
			}
		}
	}
	return report
}

// DistributionReport aggregates pickup records by day, recipient unit and
// item, with top-10 rankings by distributed quantity.
func (l *Ledger) DistributionReport(filter models.RecordFilter) models.DistributionReport {
	l.mu.Lock()
	records := derivePickupRecords(l.items, filter)
	l.mu.Unlock()

	report := models.DistributionReport{
		TotalRecords: len(records),
		DailyStats:   map[string]models.DistributionStat{},
		UnitStats:    map[string]models.DistributionStat{},
		ItemStats:    map[string]models.DistributionStat{},
	}

	for _, record := range records {
		report.TotalQuantity += record.Quantity

		daily := report.DailyStats[record.Date]
		daily.Count++
		daily.Quantity += record.Quantity
		report.DailyStats[record.Date] = daily

		unit := contactName(record.Recipient)
		if unit == "" {
			unit = "unknown"
		}
		unitStat := report.UnitStats[unit]
		unitStat.Count++
		unitStat.Quantity += record.Quantity
		report.UnitStats[unit] = unitStat

		itemStat := report.ItemStats[record.ItemName]
		itemStat.Count++
		itemStat.Quantity += record.Quantity
		report.ItemStats[record.ItemName] = itemStat
	}

	report.TopItems = rankStats(report.ItemStats, 10)
	report.TopUnits = rankStats(report.UnitStats, 10)
	return report
}

func rankStats(stats map[string]models.DistributionStat, limit int) []models.RankedStat {
	ranked := make([]models.RankedStat, 0, len(stats))
	for name, stat := range stats {
		ranked = append(ranked, models.RankedStat{Name: name, Count: stat.Count, Quantity: stat.Quantity})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
