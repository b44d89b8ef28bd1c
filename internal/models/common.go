package models

import (
	"time"
)

// Notification represents a worker notification
type Notification struct {
	ID               string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID           string     `gorm:"type:varchar(64);not null;index" json:"user_id"`
	CustomerID       *string    `gorm:"type:varchar(64);index" json:"customer_id"`
	Title            string     `gorm:"not null" json:"title"`
	Message          string     `gorm:"not null" json:"message"`
	NotificationType *string    `gorm:"index" json:"notification_type"`
	DueDate          *time.Time `gorm:"type:date;index" json:"due_date"`
	ReadAt           *time.Time `gorm:"index" json:"read_at"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// Notification type constants
const (
	NotificationTypePromiseToPay = "promise_to_pay"
	NotificationTypeSystemError  = "system_error"
)

// IsRead returns true if notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// MarkAsRead marks the notification as read
func (n *Notification) MarkAsRead() {
	now := time.Now()
	n.ReadAt = &now
}

// NotificationResponse is the JSON response format
type NotificationResponse struct {
	ID               string     `json:"id"`
	CustomerID       *string    `json:"customer_id"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	NotificationType *string    `json:"notification_type"`
	DueDate          *string    `json:"due_date"`
	Read             bool       `json:"read"`
	ReadAt           *time.Time `json:"read_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ToResponse converts Notification to NotificationResponse
func (n *Notification) ToResponse() NotificationResponse {
	resp := NotificationResponse{
		ID:               n.ID,
		CustomerID:       n.CustomerID,
		Title:            n.Title,
		Message:          n.Message,
		NotificationType: n.NotificationType,
		Read:             n.IsRead(),
		ReadAt:           n.ReadAt,
		CreatedAt:        n.CreatedAt,
	}
	if n.DueDate != nil {
		d := n.DueDate.Format(DateLayout)
		resp.DueDate = &d
	}
	return resp
}
