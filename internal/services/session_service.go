package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/statemachine"
)

// SessionService keeps one navigation state machine per worker
type SessionService struct {
	customerRepo repository.CustomerRepository
	mu           sync.Mutex
	sessions     map[string]*statemachine.NavigationFSM
}

func NewSessionService(customerRepo repository.CustomerRepository) *SessionService {
	return &SessionService{
		customerRepo: customerRepo,
		sessions:     make(map[string]*statemachine.NavigationFSM),
	}
}

// session returns the worker's navigator, creating it on the dashboard. Callers hold mu.
func (s *SessionService) session(workerID string) *statemachine.NavigationFSM {
	nav, ok := s.sessions[workerID]
	if !ok {
		nav = statemachine.NewNavigationFSM()
		s.sessions[workerID] = nav
	}
	return nav
}

// State returns the worker's current navigation state
func (s *SessionService) State(workerID string) statemachine.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(workerID).State()
}

// Apply runs one navigation command for the worker. Commands that name a
// customer require the customer to exist.
func (s *SessionService) Apply(ctx context.Context, workerID string, cmd statemachine.Command) (statemachine.State, error) {
	if cmd.Event == statemachine.EventOpenProfile || cmd.Event == statemachine.CommandSelectCustomer {
		if cmd.CustomerID != "" {
			if _, err := s.customerRepo.FindByID(ctx, cmd.CustomerID); err != nil {
				return s.State(workerID), storeError("customer "+cmd.CustomerID, err)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	nav := s.session(workerID)
	if err := nav.Apply(ctx, cmd); err != nil {
		return nav.State(), fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	return nav.State(), nil
}

// Reset drops the worker's navigation state
func (s *SessionService) Reset(workerID string) statemachine.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, workerID)
	return s.session(workerID).State()
}
