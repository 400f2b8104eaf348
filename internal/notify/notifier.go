package notify

import (
	"context"

	"github.com/courseforge/courseforge/internal/logger"
	"github.com/shopspring/decimal"
)

// Receipt is the purchase receipt dispatched after a confirmed purchase.
type Receipt struct {
	Email    string
	PlanName string
	Amount   decimal.Decimal
	Currency string
	Gateway  string
}

// Notifier dispatches user-facing notifications. Delivery is an external
// collaborator; dispatch is fire-and-forget and must never fail a billing
// operation.
type Notifier interface {
	SendReceipt(ctx context.Context, receipt Receipt)
}

// LogNotifier records dispatch requests in the application log. It stands in
// for the real delivery pipeline in local and test deployments.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendReceipt(_ context.Context, receipt Receipt) {
	n.logger.Infow("receipt dispatch requested",
		"email", receipt.Email,
		"plan", receipt.PlanName,
		"amount", receipt.Amount,
		"currency", receipt.Currency,
		"gateway", receipt.Gateway,
	)
}
