package service

import (
	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/config"
	"github.com/courseforge/courseforge/internal/domain/admin"
	"github.com/courseforge/courseforge/internal/domain/billingop"
	"github.com/courseforge/courseforge/internal/domain/course"
	"github.com/courseforge/courseforge/internal/domain/payment"
	"github.com/courseforge/courseforge/internal/domain/refund"
	"github.com/courseforge/courseforge/internal/domain/user"
	"github.com/courseforge/courseforge/internal/gateway"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/notify"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger   *logger.Logger
	Config   *config.Configuration
	Gateways gateway.ProviderFactory
	Notifier notify.Notifier
	Cache    cache.Cache

	// Repositories
	UserRepo      user.Repository
	AdminRepo     admin.Repository
	PaymentRepo   payment.Repository
	RefundRepo    refund.Repository
	BillingOpRepo billingop.Repository
	CourseRepo    course.Repository
}

// NewServiceParams builds the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	gateways gateway.ProviderFactory,
	notifier notify.Notifier,
	cache cache.Cache,
	userRepo user.Repository,
	adminRepo admin.Repository,
	paymentRepo payment.Repository,
	refundRepo refund.Repository,
	billingOpRepo billingop.Repository,
	courseRepo course.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:        logger,
		Config:        config,
		Gateways:      gateways,
		Notifier:      notifier,
		Cache:         cache,
		UserRepo:      userRepo,
		AdminRepo:     adminRepo,
		PaymentRepo:   paymentRepo,
		RefundRepo:    refundRepo,
		BillingOpRepo: billingOpRepo,
		CourseRepo:    courseRepo,
	}
}
