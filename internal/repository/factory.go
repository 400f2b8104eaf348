package repository

import (
	"github.com/courseforge/courseforge/internal/domain/admin"
	"github.com/courseforge/courseforge/internal/domain/billingop"
	"github.com/courseforge/courseforge/internal/domain/course"
	"github.com/courseforge/courseforge/internal/domain/payment"
	"github.com/courseforge/courseforge/internal/domain/refund"
	"github.com/courseforge/courseforge/internal/domain/user"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/mongodb"
	mongoRepo "github.com/courseforge/courseforge/internal/repository/mongo"
)

func NewUserRepository(db *mongodb.DB, logger *logger.Logger) user.Repository {
	return mongoRepo.NewUserRepository(db, logger)
}

func NewAdminRepository(db *mongodb.DB, logger *logger.Logger) admin.Repository {
	return mongoRepo.NewAdminRepository(db, logger)
}

func NewPaymentRepository(db *mongodb.DB, logger *logger.Logger) payment.Repository {
	return mongoRepo.NewPaymentRepository(db, logger)
}

func NewRefundRepository(db *mongodb.DB, logger *logger.Logger) refund.Repository {
	return mongoRepo.NewRefundRepository(db, logger)
}

func NewBillingOperationRepository(db *mongodb.DB, logger *logger.Logger) billingop.Repository {
	return mongoRepo.NewBillingOperationRepository(db, logger)
}

func NewCourseRepository(db *mongodb.DB, logger *logger.Logger) course.Repository {
	return mongoRepo.NewCourseRepository(db, logger)
}
