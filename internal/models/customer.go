package models

import (
	"time"
)

// DateLayout is the calendar-date wire format used for promise and registration dates
const DateLayout = "2006-01-02"

// Customer represents a pharmacy customer who may carry debt
type Customer struct {
	ID               string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	FullName         string     `gorm:"not null;index" json:"full_name"`
	PhoneNumber      string     `gorm:"not null;index" json:"phone_number"`
	Address          string     `json:"address"`
	Notes            string     `gorm:"type:text" json:"notes"`
	PromiseToPayDate *time.Time `gorm:"type:date;index" json:"promise_to_pay_date"`
	DateRegistered   time.Time  `gorm:"type:date;not null" json:"date_registered"`
	Blocked          bool       `gorm:"default:false;not null" json:"blocked"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// HasPromiseOn returns true if the promise-to-pay date falls on the given calendar day
func (c *Customer) HasPromiseOn(day time.Time) bool {
	if c.PromiseToPayDate == nil {
		return false
	}
	return SameDate(*c.PromiseToPayDate, day)
}

// CustomerResponse is the JSON response format for customers
type CustomerResponse struct {
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	PhoneNumber      string  `json:"phone_number"`
	Address          string  `json:"address"`
	Notes            string  `json:"notes"`
	PromiseToPayDate *string `json:"promise_to_pay_date"`
	DateRegistered   string  `json:"date_registered"`
	Blocked          bool    `json:"blocked"`
}

// ToResponse converts Customer to CustomerResponse
func (c *Customer) ToResponse() CustomerResponse {
	resp := CustomerResponse{
		ID:             c.ID,
		FullName:       c.FullName,
		PhoneNumber:    c.PhoneNumber,
		Address:        c.Address,
		Notes:          c.Notes,
		DateRegistered: c.DateRegistered.Format(DateLayout),
		Blocked:        c.Blocked,
	}
	if c.PromiseToPayDate != nil {
		d := c.PromiseToPayDate.Format(DateLayout)
		resp.PromiseToPayDate = &d
	}
	return resp
}

// DateOf truncates t to midnight UTC of its own calendar day
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// SameDate compares the calendar dates of a and b, each read in its own
// location. Time of day is ignored.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
