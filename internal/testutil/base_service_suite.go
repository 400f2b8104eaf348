package testutil

import (
	"context"
	"time"

	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/config"
	"github.com/courseforge/courseforge/internal/domain/admin"
	"github.com/courseforge/courseforge/internal/domain/billingop"
	"github.com/courseforge/courseforge/internal/domain/course"
	"github.com/courseforge/courseforge/internal/domain/payment"
	"github.com/courseforge/courseforge/internal/domain/refund"
	"github.com/courseforge/courseforge/internal/domain/user"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/notify"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/courseforge/courseforge/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	UserRepo      user.Repository
	AdminRepo     admin.Repository
	PaymentRepo   payment.Repository
	RefundRepo    refund.Repository
	BillingOpRepo billingop.Repository
	CourseRepo    course.Repository
}

// BaseServiceTestSuite provides common setup for service tests: a request
// context with an acting user, in-memory stores and a fake gateway factory
// covering every gateway type.
type BaseServiceTestSuite struct {
	suite.Suite

	ctx      context.Context
	cfg      *config.Configuration
	logger   *logger.Logger
	stores   Stores
	gateways *FakeProviderFactory
	notifier notify.Notifier
	cache    cache.Cache
	now      time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.cfg = config.GetDefaultConfig()
	var err error
	s.logger, err = logger.NewLogger(s.cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.gateways = NewFakeProviderFactory(types.AllPaymentGatewayTypes...)
	s.notifier = notify.NewLogNotifier(s.logger)
	s.cache = cache.NewInMemoryCache(false)
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, "user_test_admin")
	ctx = types.SetUserEmail(ctx, "admin@test.com")
	s.ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		UserRepo:      NewInMemoryUserStore(),
		AdminRepo:     NewInMemoryAdminStore(),
		PaymentRepo:   NewInMemoryPaymentStore(),
		RefundRepo:    NewInMemoryRefundStore(),
		BillingOpRepo: NewInMemoryBillingOperationStore(),
		CourseRepo:    NewInMemoryCourseStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.AdminRepo.(*InMemoryAdminStore).Clear()
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
	s.stores.RefundRepo.(*InMemoryRefundStore).Clear()
	s.stores.BillingOpRepo.(*InMemoryBillingOperationStore).Clear()
	s.stores.CourseRepo.(*InMemoryCourseStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetGateways returns the fake provider factory
func (s *BaseServiceTestSuite) GetGateways() *FakeProviderFactory {
	return s.gateways
}

// GetNotifier returns the test notifier
func (s *BaseServiceTestSuite) GetNotifier() notify.Notifier {
	return s.notifier
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetNow returns the timestamp taken at test setup
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
