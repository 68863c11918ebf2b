package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats indicadores del tablero principal.
type DashboardStats struct {
	TotalProducts     int
	TotalRevenue      decimal.Decimal // salidas del mes en curso
	TotalCustomers    int
	PendingDeliveries int
	EntriesThisMonth  int
	ExitsThisMonth    int
}

// Activity evento reciente mostrado en el tablero (proyección de history).
type Activity struct {
	ID          int64
	Type        HistoryType
	Status      HistoryStatus
	Description string
	Timestamp   time.Time
}
