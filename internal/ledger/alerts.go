package ledger

import (
	"fmt"
	"time"

	"github.com/YC815/Miaoli/pkg/models"
)

// EvaluateAlerts computes the warnings for one item snapshot. Pure: callers
// decide whether warnings become notifications, log lines or responses.
//
// An item expiring later today counts as 0 days left but is not expired;
// "expired" requires the date to have strictly passed.
func EvaluateAlerts(item models.Item, today time.Time) []models.Warning {
	var warnings []models.Warning

	if item.Quantity > 0 && item.Quantity <= item.SafetyStock {
		warnings = append(warnings, models.Warning{
			Type:     models.WarningLowStock,
			ItemName: item.Name,
			Quantity: item.Quantity,
			Message:  fmt.Sprintf("%s is low on stock, current quantity: %d", item.Name, item.Quantity),
		})
	}

	if item.ExpiryDate != "" {
		if expiry, err := time.Parse(dateLayout, item.ExpiryDate); err == nil {
			days := daysUntil(expiry, today)
			switch {
			case days < 0:
				warnings = append(warnings, models.Warning{
					Type:     models.WarningExpired,
					ItemName: item.Name,
					Message:  fmt.Sprintf("%s has expired", item.Name),
				})
			case days <= expiryWarningDays:
				warnings = append(warnings, models.Warning{
					Type:     models.WarningExpiry,
					ItemName: item.Name,
					DaysLeft: days,
					Message:  fmt.Sprintf("%s expires in %d days", item.Name, days),
				})
			}
		}
	}

	return warnings
}

// daysUntil is the calendar-day difference: the time-of-day part of now is
// dropped, which rounds the remaining time up to whole days.
func daysUntil(expiry, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(today).Hours() / 24)
}
