package models

// Stats are the dashboard counters, recomputed on demand. The monthly counts
// walk every operation of every item, so the cost is O(items x operations).
type Stats struct {
	TotalItems          int `json:"total_items"`
	MonthlyDonation     int `json:"monthly_donation"`
	MonthlyDistribution int `json:"monthly_distribution"`
	LowStock            int `json:"low_stock"`
}

type CategoryStat struct {
	Count    int `json:"count"`
	Quantity int `json:"quantity"`
}

type InventoryReport struct {
	TotalItems    int                     `json:"total_items"`
	TotalQuantity int                     `json:"total_quantity"`
	Categories    map[string]CategoryStat `json:"categories"`
	LowStockItems []Item                  `json:"low_stock_items"`
	ExpiredItems  []Item                  `json:"expired_items"`
	ExpiringItems []Item                  `json:"expiring_items"`
}

type DistributionStat struct {
	Count    int `json:"count"`
	Quantity int `json:"quantity"`
}

type RankedStat struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Quantity int    `json:"quantity"`
}

type DistributionReport struct {
	TotalRecords  int                         `json:"total_records"`
	TotalQuantity int                         `json:"total_quantity"`
	DailyStats    map[string]DistributionStat `json:"daily_stats"`
	UnitStats     map[string]DistributionStat `json:"unit_stats"`
	ItemStats     map[string]DistributionStat `json:"item_stats"`
	TopItems      []RankedStat                `json:"top_items"`
	TopUnits      []RankedStat                `json:"top_units"`
}

type WarningType string

const (
	WarningLowStock WarningType = "low_stock"
	WarningExpiry   WarningType = "expiry_warning"
	WarningExpired  WarningType = "expired"
)

type Warning struct {
	Type     WarningType `json:"type"`
	ItemName string      `json:"item"`
	Message  string      `json:"message"`
	Quantity int         `json:"quantity,omitempty"`
	DaysLeft int         `json:"days_left,omitempty"`
}

// BatchResult reports the outcome for one entry of a batch mutation.
type BatchResult struct {
	ItemName string `json:"item"`
	Quantity int    `json:"quantity,omitempty"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
}
