package repository

import (
	"context"
	"time"

	"github.com/sjperalta/debtbook-api/internal/models"
	"gorm.io/gorm"
)

// CustomerRepository defines the interface for customer data access.
// FindAll returns customers in registration order.
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]models.Customer, error)
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Count(ctx context.Context) (int64, error)
}

// DebtRepository defines the interface for debt data access
type DebtRepository interface {
	FindAll(ctx context.Context) ([]models.Debt, error)
	FindByID(ctx context.Context, id string) (*models.Debt, error)
	Create(ctx context.Context, debt *models.Debt) error
	Update(ctx context.Context, debt *models.Debt) error
	Delete(ctx context.Context, id string) error
}

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	FindAll(ctx context.Context) ([]models.Payment, error)
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id string) error
}

// UserRepository defines the interface for worker data access
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindActive(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	FindByUser(ctx context.Context, userID string, query *ListQuery) ([]models.Notification, int64, error)
	Create(ctx context.Context, notification *models.Notification) error
	Update(ctx context.Context, notification *models.Notification) error
	MarkAllAsRead(ctx context.Context, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
	ExistsForCustomerOn(ctx context.Context, userID, customerID string, due time.Time) (bool, error)
}

// Repositories holds all repository instances
type Repositories struct {
	Customer     CustomerRepository
	Debt         DebtRepository
	Payment      PaymentRepository
	User         UserRepository
	Notification NotificationRepository
}

// NewRepositories creates all repository instances backed by the database
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer:     NewCustomerRepository(db),
		Debt:         NewDebtRepository(db),
		Payment:      NewPaymentRepository(db),
		User:         NewUserRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// ListQuery holds paging and filter options
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// Offset returns the number of rows to skip for the current page
func (q *ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}
