package memory

import (
	"context"
	"time"

	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
)

type AccountRepo struct {
	s *Store
}

func (r *AccountRepo) Create(_ context.Context, account authsvc.NewAccount) (authsvc.AccountRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.accounts {
		if existing.Email == account.Email {
			return authsvc.AccountRecord{}, authsvc.ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	record := authsvc.AccountRecord{
		ID:           r.s.id(),
		Name:         account.Name,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.accounts[record.ID] = record
	return record, nil
}

func (r *AccountRepo) FindByEmail(_ context.Context, email string) (authsvc.AccountRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, account := range r.s.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return authsvc.AccountRecord{}, authsvc.ErrAccountNotFound
}

func (r *AccountRepo) FindByID(_ context.Context, id int64) (authsvc.AccountRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return authsvc.AccountRecord{}, authsvc.ErrAccountNotFound
	}
	return account, nil
}

type SessionRepo struct {
	s *Store
}

func (r *SessionRepo) Put(_ context.Context, session authsvc.SessionRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[session.UserID]; !ok {
		return authsvc.ErrAccountNotFound
	}
	r.s.sessions[session.UserID] = session
	return nil
}

func (r *SessionRepo) Get(_ context.Context, userID int64) (authsvc.SessionRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[userID]
	if !ok {
		return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
	}
	return session, nil
}
