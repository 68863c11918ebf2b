package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsDTO respuesta de GET /api/dashboard/stats (mes calendario en curso).
type DashboardStatsDTO struct {
	TotalProducts     int             `json:"total_products"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"` // suma de exits.total_price del mes
	TotalCustomers    int             `json:"total_customers"`
	PendingDeliveries int             `json:"pending_deliveries"`
	EntriesThisMonth  int             `json:"entries_this_month"`
	ExitsThisMonth    int             `json:"exits_this_month"`
}

// ActivityDTO evento reciente del historial.
type ActivityDTO struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// LowStockDTO producto con stock bajo el umbral.
type LowStockDTO struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Stock decimal.Decimal `json:"stock"`
	Unit  string          `json:"type"`
}

// DashboardOverviewDTO respuesta de GET /api/dashboard: los tres widgets en una sola llamada.
type DashboardOverviewDTO struct {
	Stats      DashboardStatsDTO `json:"stats"`
	Activities []ActivityDTO     `json:"activities"`
	LowStock   []LowStockDTO     `json:"low_stock"`
	DateLabel  string            `json:"date_label"` // ej: "Mayo 2024"
}
