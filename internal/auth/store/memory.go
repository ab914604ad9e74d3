package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
)

// MemoryStore keeps accounts in a map, enforcing the same uniqueness
// rules as the Postgres store. It backs tests and local experiments.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*auth.Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:   1,
		accounts: make(map[int64]*auth.Account),
	}
}

func (s *MemoryStore) FindByUsername(_ context.Context, username string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username == username {
			return copyAccount(a), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return copyAccount(a), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByProviderID(_ context.Context, provider auth.Provider, providerID string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Provider == provider && a.ProviderID != "" && a.ProviderID == providerID {
			return copyAccount(a), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *MemoryStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *MemoryStore) Save(_ context.Context, account *auth.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnique(account); err != nil {
		return err
	}

	now := time.Now()
	if account.ID == 0 {
		account.ID = s.nextID
		s.nextID++
		account.CreatedAt = now
	} else if _, ok := s.accounts[account.ID]; !ok {
		return ErrNotFound
	}
	account.UpdatedAt = now

	s.accounts[account.ID] = copyAccount(account)
	return nil
}

func (s *MemoryStore) checkUnique(candidate *auth.Account) error {
	for id, a := range s.accounts {
		if id == candidate.ID {
			continue
		}
		if a.Username == candidate.Username {
			return ErrConflict
		}
		if strings.EqualFold(a.Email, candidate.Email) {
			return ErrConflict
		}
		if candidate.ProviderID != "" && a.Provider == candidate.Provider && a.ProviderID == candidate.ProviderID {
			return ErrConflict
		}
	}
	return nil
}

func copyAccount(a *auth.Account) *auth.Account {
	dup := *a
	dup.Roles = append([]string(nil), a.Roles...)
	return &dup
}
