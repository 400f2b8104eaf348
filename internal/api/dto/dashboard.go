package dto

import (
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
)

// DashboardResponse carries the admin dashboard aggregates. Read-only; the
// sub-aggregations behind it run concurrently.
type DashboardResponse struct {
	TotalUsers    int64                        `json:"total_users"`
	TotalCourses  int64                        `json:"total_courses"`
	TotalPayments int64                        `json:"total_payments"`
	TotalRevenue  decimal.Decimal              `json:"total_revenue"`
	RefundCounts  map[types.RefundStatus]int64 `json:"refund_counts"`
}
