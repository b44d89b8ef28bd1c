// Package validation checks customer, debt and payment input before it is
// turned into records. Checks return a Result listing every violated
// constraint instead of failing on the first one.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/debtbook-api/internal/models"
)

var validate = validator.New()

func init() {
	// Money fields reach the rules as their exact decimal string.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			return v.String()
		}
		return nil
	}, decimal.Decimal{})
	_ = validate.RegisterValidation("dpositive", decimalRule(func(d decimal.Decimal) bool {
		return d.IsPositive()
	}))
	_ = validate.RegisterValidation("money", decimalRule(FitsMoneyColumn))

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Rule names reported in violations
const (
	RuleRequired  = "required"
	RulePositive  = "positive"
	RulePrecision = "precision"
	RuleDate      = "date"
	RuleDuplicate = "duplicate"
)

// Amounts are stored as decimal(12,2)
const (
	MoneyScale         = 2
	MoneyIntegerDigits = 10
)

var moneyLimit = decimal.New(1, MoneyIntegerDigits)

// FitsMoneyColumn reports whether d can be stored without rounding: at most
// two decimal places and ten integer digits.
func FitsMoneyColumn(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale)) && d.Abs().LessThan(moneyLimit)
}

func decimalRule(ok func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && ok(d)
	}
}

// Violation is one failed constraint
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result collects the violations of one check. A Result with no violations is valid.
type Result struct {
	Violations []Violation `json:"violations"`
}

// Valid reports whether no constraint was violated
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Add appends a violation
func (r *Result) Add(field, rule, message string) {
	r.Violations = append(r.Violations, Violation{Field: field, Rule: rule, Message: message})
}

// Merge appends the violations of other
func (r *Result) Merge(other Result) {
	r.Violations = append(r.Violations, other.Violations...)
}

// Has reports whether field violated rule
func (r Result) Has(field, rule string) bool {
	for _, v := range r.Violations {
		if v.Field == field && v.Rule == rule {
			return true
		}
	}
	return false
}

// Error joins the violation messages
func (r Result) Error() string {
	msgs := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// CustomerInput is the data submitted by the add/edit customer form
type CustomerInput struct {
	FullName         string `json:"full_name" validate:"required"`
	PhoneNumber      string `json:"phone_number" validate:"required"`
	Address          string `json:"address"`
	Notes            string `json:"notes"`
	PromiseToPayDate string `json:"promise_to_pay_date" validate:"omitempty,datetime=2006-01-02"`
	Blocked          bool   `json:"blocked"`
}

// Normalize trims surrounding whitespace from the identifying fields
func (in *CustomerInput) Normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.PromiseToPayDate = strings.TrimSpace(in.PromiseToPayDate)
}

// EntryInput is the data submitted by the add-debt and record-payment forms
type EntryInput struct {
	CustomerID string          `json:"customer_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"dpositive,money"`
	Note       string          `json:"note"`
}

// AmountEditInput is the data submitted by the edit-debt and edit-payment forms
type AmountEditInput struct {
	Amount decimal.Decimal `json:"amount" validate:"dpositive,money"`
	Note   string          `json:"note"`
}

var messages = map[string]string{
	"full_name.required":           "Full name is required",
	"phone_number.required":        "Phone number is required",
	"promise_to_pay_date.datetime": "Promise-to-pay date must be YYYY-MM-DD",
	"customer_id.required":         "Customer is required",
	"amount.dpositive":             "Amount must be greater than zero",
	"amount.money":                 "Amount must have at most 2 decimal places and 10 integer digits",
}

var rules = map[string]string{
	"required":  RuleRequired,
	"dpositive": RulePositive,
	"money":     RulePrecision,
	"datetime":  RuleDate,
}

func check(input interface{}) Result {
	var result Result
	err := validate.Struct(input)
	if err == nil {
		return result
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		result.Add("", "invalid", err.Error())
		return result
	}
	for _, fe := range errs {
		rule, known := rules[fe.Tag()]
		if !known {
			rule = fe.Tag()
		}
		msg, found := messages[fe.Field()+"."+fe.Tag()]
		if !found {
			msg = fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
		}
		result.Add(fe.Field(), rule, msg)
	}
	return result
}

// ValidateCustomer checks the required fields and the promise date format
func ValidateCustomer(in CustomerInput) Result {
	in.Normalize()
	return check(in)
}

// CheckDuplicateCustomer rejects input whose phone number, or full name when
// matchName is set, already belongs to an existing customer.
func CheckDuplicateCustomer(existing []models.Customer, in CustomerInput, matchName bool) Result {
	var result Result
	in.Normalize()
	for _, c := range existing {
		phoneMatch := c.PhoneNumber == in.PhoneNumber
		nameMatch := matchName && c.FullName == in.FullName
		if !phoneMatch && !nameMatch {
			continue
		}
		field := "phone_number"
		if !phoneMatch {
			field = "full_name"
		}
		result.Add(field, RuleDuplicate, fmt.Sprintf("Customer already exists: %s - %s", c.FullName, c.PhoneNumber))
		return result
	}
	return result
}

// ValidateDebt checks the add-debt form
func ValidateDebt(in EntryInput) Result {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	return check(in)
}

// ValidatePayment checks the record-payment form
func ValidatePayment(in EntryInput) Result {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	return check(in)
}

// ValidateAmountEdit checks the edit forms
func ValidateAmountEdit(in AmountEditInput) Result {
	return check(in)
}
