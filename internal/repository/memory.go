package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// MemoryStore is a process-local store used when no database is configured.
// Collections keep insertion order and every read returns copies.
type MemoryStore struct {
	mu            sync.RWMutex
	customers     []models.Customer
	debts         []models.Debt
	payments      []models.Payment
	users         []models.User
	notifications []models.Notification
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryRepositories creates all repository instances backed by store
func NewMemoryRepositories(store *MemoryStore) *Repositories {
	return &Repositories{
		Customer:     &memoryCustomerRepository{store: store},
		Debt:         &memoryDebtRepository{store: store},
		Payment:      &memoryPaymentRepository{store: store},
		User:         &memoryUserRepository{store: store},
		Notification: &memoryNotificationRepository{store: store},
	}
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

type memoryCustomerRepository struct {
	store *MemoryStore
}

func (r *memoryCustomerRepository) FindAll(_ context.Context) ([]models.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]models.Customer, len(r.store.customers))
	for i, c := range r.store.customers {
		out[i] = copyCustomer(c)
	}
	return out, nil
}

func (r *memoryCustomerRepository) FindByID(_ context.Context, id string) (*models.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	i := indexOf(r.store.customers, func(c models.Customer) bool { return c.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	c := copyCustomer(r.store.customers[i])
	return &c, nil
}

func (r *memoryCustomerRepository) Create(_ context.Context, customer *models.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if indexOf(r.store.customers, func(c models.Customer) bool { return c.ID == customer.ID }) >= 0 {
		return ErrDuplicate
	}
	now := time.Now()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now
	r.store.customers = append(r.store.customers, copyCustomer(*customer))
	return nil
}

func (r *memoryCustomerRepository) Update(_ context.Context, customer *models.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i := indexOf(r.store.customers, func(c models.Customer) bool { return c.ID == customer.ID })
	if i < 0 {
		return ErrNotFound
	}
	stored := &r.store.customers[i]
	stored.FullName = customer.FullName
	stored.PhoneNumber = customer.PhoneNumber
	stored.Address = customer.Address
	stored.Notes = customer.Notes
	stored.PromiseToPayDate = copyTime(customer.PromiseToPayDate)
	stored.Blocked = customer.Blocked
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *memoryCustomerRepository) Count(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.customers)), nil
}

type memoryDebtRepository struct {
	store *MemoryStore
}

func (r *memoryDebtRepository) FindAll(_ context.Context) ([]models.Debt, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]models.Debt(nil), r.store.debts...), nil
}

func (r *memoryDebtRepository) FindByID(_ context.Context, id string) (*models.Debt, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	i := indexOf(r.store.debts, func(d models.Debt) bool { return d.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	d := r.store.debts[i]
	return &d, nil
}

func (r *memoryDebtRepository) Create(_ context.Context, debt *models.Debt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if indexOf(r.store.debts, func(d models.Debt) bool { return d.ID == debt.ID }) >= 0 {
		return ErrDuplicate
	}
	if debt.CreatedAt.IsZero() {
		debt.CreatedAt = time.Now()
	}
	r.store.debts = append(r.store.debts, *debt)
	return nil
}

func (r *memoryDebtRepository) Update(_ context.Context, debt *models.Debt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i := indexOf(r.store.debts, func(d models.Debt) bool { return d.ID == debt.ID })
	if i < 0 {
		return ErrNotFound
	}
	r.store.debts[i].DebtAmount = debt.DebtAmount
	r.store.debts[i].Note = debt.Note
	return nil
}

func (r *memoryDebtRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i := indexOf(r.store.debts, func(d models.Debt) bool { return d.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	r.store.debts = append(r.store.debts[:i:i], r.store.debts[i+1:]...)
	return nil
}

type memoryPaymentRepository struct {
	store *MemoryStore
}

func (r *memoryPaymentRepository) FindAll(_ context.Context) ([]models.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]models.Payment(nil), r.store.payments...), nil
}

func (r *memoryPaymentRepository) FindByID(_ context.Context, id string) (*models.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	i := indexOf(r.store.payments, func(p models.Payment) bool { return p.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	p := r.store.payments[i]
	return &p, nil
}

func (r *memoryPaymentRepository) Create(_ context.Context, payment *models.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if indexOf(r.store.payments, func(p models.Payment) bool { return p.ID == payment.ID }) >= 0 {
		return ErrDuplicate
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}
	r.store.payments = append(r.store.payments, *payment)
	return nil
}

func (r *memoryPaymentRepository) Update(_ context.Context, payment *models.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i := indexOf(r.store.payments, func(p models.Payment) bool { return p.ID == payment.ID })
	if i < 0 {
		return ErrNotFound
	}
	r.store.payments[i].Amount = payment.Amount
	r.store.payments[i].Note = payment.Note
	return nil
}

func (r *memoryPaymentRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i := indexOf(r.store.payments, func(p models.Payment) bool { return p.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	r.store.payments = append(r.store.payments[:i:i], r.store.payments[i+1:]...)
	return nil
}

type memoryUserRepository struct {
	store *MemoryStore
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	i := indexOf(r.store.users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	u := r.store.users[i]
	return &u, nil
}

func (r *memoryUserRepository) FindAll(_ context.Context) ([]models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]models.User(nil), r.store.users...), nil
}

func (r *memoryUserRepository) FindActive(_ context.Context) ([]models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []models.User
	for _, u := range r.store.users {
		if u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if indexOf(r.store.users, func(u models.User) bool { return u.ID == user.ID || u.Username == user.Username }) >= 0 {
		return ErrDuplicate
	}
	if user.Role == "" {
		user.Role = models.RoleWorker
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.store.users = append(r.store.users, *user)
	return nil
}

type memoryNotificationRepository struct {
	store *MemoryStore
}

func (r *memoryNotificationRepository) FindByID(_ context.Context, id string) (*models.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	i := indexOf(r.store.notifications, func(n models.Notification) bool { return n.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	n := r.store.notifications[i]
	return &n, nil
}

func (r *memoryNotificationRepository) FindByUser(_ context.Context, userID string, query *ListQuery) ([]models.Notification, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	status := strings.ToLower(query.Filters["status"])
	var matched []models.Notification
	for _, n := range r.store.notifications {
		if n.UserID != userID {
			continue
		}
		if status == "unread" && n.IsRead() || status == "read" && !n.IsRead() {
			continue
		}
		matched = append(matched, n)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if query.PerPage > 0 {
		start := query.Offset()
		if start > len(matched) {
			start = len(matched)
		}
		end := start + query.PerPage
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *memoryNotificationRepository) Create(_ context.Context, notification *models.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if indexOf(r.store.notifications, func(n models.Notification) bool { return n.ID == notification.ID }) >= 0 {
		return ErrDuplicate
	}
	now := time.Now()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = now
	}
	notification.UpdatedAt = now
	r.store.notifications = append(r.store.notifications, *notification)
	return nil
}

func (r *memoryNotificationRepository) Update(_ context.Context, notification *models.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i := indexOf(r.store.notifications, func(n models.Notification) bool { return n.ID == notification.ID })
	if i < 0 {
		return ErrNotFound
	}
	notification.UpdatedAt = time.Now()
	r.store.notifications[i] = *notification
	return nil
}

func (r *memoryNotificationRepository) MarkAllAsRead(_ context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for i := range r.store.notifications {
		n := &r.store.notifications[i]
		if n.UserID == userID && n.ReadAt == nil {
			readAt := now
			n.ReadAt = &readAt
		}
	}
	return nil
}

func (r *memoryNotificationRepository) CountUnread(_ context.Context, userID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var count int64
	for _, n := range r.store.notifications {
		if n.UserID == userID && n.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *memoryNotificationRepository) ExistsForCustomerOn(_ context.Context, userID, customerID string, due time.Time) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, n := range r.store.notifications {
		if n.UserID != userID || n.CustomerID == nil || *n.CustomerID != customerID || n.DueDate == nil {
			continue
		}
		if models.SameDate(*n.DueDate, due) {
			return true, nil
		}
	}
	return false, nil
}

func copyCustomer(c models.Customer) models.Customer {
	c.PromiseToPayDate = copyTime(c.PromiseToPayDate)
	return c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
