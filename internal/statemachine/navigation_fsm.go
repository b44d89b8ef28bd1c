package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
)

// View states
const (
	ViewDashboard       = "dashboard"
	ViewCustomersList   = "customers_list"
	ViewCustomerProfile = "customer_profile"
)

// View events
const (
	EventOpenDashboard = "open_dashboard"
	EventOpenCustomers = "open_customers"
	EventOpenProfile   = "open_profile"
	EventBack          = "back"
)

// Commands accepted by Apply besides the view events
const (
	CommandRequestDebt    = "request_debt"
	CommandRequestPayment = "request_payment"
	CommandSelectCustomer = "select_customer"
	CommandAddCustomer    = "open_add_customer"
	CommandEditDebt       = "edit_debt"
	CommandEditPayment    = "edit_payment"
	CommandCloseModal     = "close_modal"
)

// Customer selection purposes
const (
	PurposeDebt    = "debt"
	PurposePayment = "payment"
)

// Modal names used by CloseModal
const (
	ModalAddCustomer       = "add_customer"
	ModalCustomerSelection = "customer_selection"
	ModalAddDebt           = "add_debt"
	ModalRecordPayment     = "record_payment"
	ModalEditDebt          = "edit_debt"
	ModalEditPayment       = "edit_payment"
)

// Modals holds the independent modal flags. Each modal opens and closes on
// its own; several may be open at once.
type Modals struct {
	AddCustomer       bool    `json:"add_customer"`
	CustomerSelection *string `json:"customer_selection"`
	AddDebt           bool    `json:"add_debt"`
	RecordPayment     bool    `json:"record_payment"`
	EditDebtID        *string `json:"edit_debt_id"`
	EditPaymentID     *string `json:"edit_payment_id"`
}

// State is a read-only copy of the navigator
type State struct {
	View               string  `json:"view"`
	SelectedCustomerID *string `json:"selected_customer_id"`
	Modals             Modals  `json:"modals"`
}

// Command is one navigation request
type Command struct {
	Event      string `json:"event"`
	CustomerID string `json:"customer_id"`
	Purpose    string `json:"purpose"`
	RecordID   string `json:"record_id"`
	Modal      string `json:"modal"`
}

// NavigationFSM tracks which view is shown, which customer is selected and
// which modals are open for one worker.
type NavigationFSM struct {
	fsm              *fsm.FSM
	selectedCustomer string
	modals           Modals
}

// NewNavigationFSM creates a navigator on the dashboard with nothing selected
func NewNavigationFSM() *NavigationFSM {
	n := &NavigationFSM{}

	n.fsm = fsm.NewFSM(
		ViewDashboard,
		fsm.Events{
			// list/profile → dashboard
			{Name: EventOpenDashboard, Src: []string{ViewCustomersList, ViewCustomerProfile}, Dst: ViewDashboard},

			// dashboard/profile → list
			{Name: EventOpenCustomers, Src: []string{ViewDashboard, ViewCustomerProfile}, Dst: ViewCustomersList},

			// any → profile
			{Name: EventOpenProfile, Src: []string{ViewDashboard, ViewCustomersList, ViewCustomerProfile}, Dst: ViewCustomerProfile},

			// profile/list → dashboard
			{Name: EventBack, Src: []string{ViewCustomerProfile, ViewCustomersList}, Dst: ViewDashboard},
		},
		fsm.Callbacks{
			"leave_" + ViewCustomerProfile: func(_ context.Context, _ *fsm.Event) {
				n.selectedCustomer = ""
			},
		},
	)

	return n
}

func (n *NavigationFSM) fire(ctx context.Context, event string) error {
	err := n.fsm.Event(ctx, event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return fmt.Errorf("cannot %s from %s: %w", event, n.fsm.Current(), err)
	}
	return nil
}

// OpenDashboard shows the dashboard
func (n *NavigationFSM) OpenDashboard(ctx context.Context) error {
	if n.fsm.Current() == ViewDashboard {
		return nil
	}
	return n.fire(ctx, EventOpenDashboard)
}

// OpenCustomers shows the customer list
func (n *NavigationFSM) OpenCustomers(ctx context.Context) error {
	if n.fsm.Current() == ViewCustomersList {
		return nil
	}
	return n.fire(ctx, EventOpenCustomers)
}

// OpenProfile shows the profile of customerID and selects it
func (n *NavigationFSM) OpenProfile(ctx context.Context, customerID string) error {
	if customerID == "" {
		return errors.New("customer_id is required to open a profile")
	}
	if err := n.fire(ctx, EventOpenProfile); err != nil {
		return err
	}
	n.selectedCustomer = customerID
	return nil
}

// Back leaves the profile or list for the dashboard and clears the selection
func (n *NavigationFSM) Back(ctx context.Context) error {
	if !n.fsm.Can(EventBack) {
		return fmt.Errorf("cannot go back from %s", n.fsm.Current())
	}
	return n.fire(ctx, EventBack)
}

// RequestDebt opens the add-debt form directly on a profile with a selected
// customer, and the customer picker everywhere else.
func (n *NavigationFSM) RequestDebt() {
	n.request(PurposeDebt)
}

// RequestPayment is RequestDebt for the record-payment form
func (n *NavigationFSM) RequestPayment() {
	n.request(PurposePayment)
}

func (n *NavigationFSM) request(purpose string) {
	if n.fsm.Current() == ViewCustomerProfile && n.selectedCustomer != "" {
		n.openForm(purpose)
		return
	}
	p := purpose
	n.modals.CustomerSelection = &p
}

func (n *NavigationFSM) openForm(purpose string) {
	if purpose == PurposeDebt {
		n.modals.AddDebt = true
	} else {
		n.modals.RecordPayment = true
	}
}

// SelectCustomer answers an open customer picker: it selects customerID,
// closes the picker and opens the form the picker was opened for.
func (n *NavigationFSM) SelectCustomer(customerID string) error {
	if n.modals.CustomerSelection == nil {
		return errors.New("no customer selection is open")
	}
	if customerID == "" {
		return errors.New("customer_id is required")
	}
	purpose := *n.modals.CustomerSelection
	n.selectedCustomer = customerID
	n.modals.CustomerSelection = nil
	n.openForm(purpose)
	return nil
}

// OpenAddCustomer opens the add-customer form
func (n *NavigationFSM) OpenAddCustomer() {
	n.modals.AddCustomer = true
}

// EditDebt opens the edit form for debtID
func (n *NavigationFSM) EditDebt(debtID string) error {
	if debtID == "" {
		return errors.New("record_id is required")
	}
	n.modals.EditDebtID = &debtID
	return nil
}

// EditPayment opens the edit form for paymentID
func (n *NavigationFSM) EditPayment(paymentID string) error {
	if paymentID == "" {
		return errors.New("record_id is required")
	}
	n.modals.EditPaymentID = &paymentID
	return nil
}

// CloseModal closes one modal. Closing a closed modal is a no-op.
func (n *NavigationFSM) CloseModal(modal string) error {
	switch modal {
	case ModalAddCustomer:
		n.modals.AddCustomer = false
	case ModalCustomerSelection:
		n.modals.CustomerSelection = nil
	case ModalAddDebt:
		n.modals.AddDebt = false
	case ModalRecordPayment:
		n.modals.RecordPayment = false
	case ModalEditDebt:
		n.modals.EditDebtID = nil
	case ModalEditPayment:
		n.modals.EditPaymentID = nil
	default:
		return fmt.Errorf("unknown modal: %q", modal)
	}
	return nil
}

// Apply dispatches a command to the matching transition
func (n *NavigationFSM) Apply(ctx context.Context, cmd Command) error {
	switch cmd.Event {
	case EventOpenDashboard:
		return n.OpenDashboard(ctx)
	case EventOpenCustomers:
		return n.OpenCustomers(ctx)
	case EventOpenProfile:
		return n.OpenProfile(ctx, cmd.CustomerID)
	case EventBack:
		return n.Back(ctx)
	case CommandRequestDebt:
		n.RequestDebt()
	case CommandRequestPayment:
		n.RequestPayment()
	case CommandSelectCustomer:
		return n.SelectCustomer(cmd.CustomerID)
	case CommandAddCustomer:
		n.OpenAddCustomer()
	case CommandEditDebt:
		return n.EditDebt(cmd.RecordID)
	case CommandEditPayment:
		return n.EditPayment(cmd.RecordID)
	case CommandCloseModal:
		return n.CloseModal(cmd.Modal)
	default:
		return fmt.Errorf("unknown navigation event: %q", cmd.Event)
	}
	return nil
}

// Current returns the current view
func (n *NavigationFSM) Current() string {
	return n.fsm.Current()
}

// Can checks if a view event is possible
func (n *NavigationFSM) Can(event string) bool {
	return n.fsm.Can(event)
}

// State returns a copy of the navigator state
func (n *NavigationFSM) State() State {
	s := State{View: n.fsm.Current(), Modals: n.modals}
	if n.selectedCustomer != "" {
		id := n.selectedCustomer
		s.SelectedCustomerID = &id
	}
	if n.modals.CustomerSelection != nil {
		p := *n.modals.CustomerSelection
		s.Modals.CustomerSelection = &p
	}
	if n.modals.EditDebtID != nil {
		id := *n.modals.EditDebtID
		s.Modals.EditDebtID = &id
	}
	if n.modals.EditPaymentID != nil {
		id := *n.modals.EditPaymentID
		s.Modals.EditPaymentID = &id
	}
	return s
}
