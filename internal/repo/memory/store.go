// Package memory holds process-local implementations of every store. It backs
// the "memory" storage driver used for local runs and router tests.
package memory

import (
	"sort"
	"sync"

	"github.com/Rudio1/api-meals/internal/domain/model"
	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
)

// Store is one lock over all tables so cross-table checks stay consistent.
type Store struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]authsvc.AccountRecord
	sessions map[int64]authsvc.SessionRecord
	posts    map[int64]model.Post
	comments map[int64]model.Comment
	replies  map[int64]model.Reply
	meals    map[int64]model.Meal
	types    map[int64]model.MealType
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[int64]authsvc.AccountRecord),
		sessions: make(map[int64]authsvc.SessionRecord),
		posts:    make(map[int64]model.Post),
		comments: make(map[int64]model.Comment),
		replies:  make(map[int64]model.Reply),
		meals:    make(map[int64]model.Meal),
		types:    make(map[int64]model.MealType),
	}
}

func (s *Store) Accounts() *AccountRepo { return &AccountRepo{s} }
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{s} }
func (s *Store) Posts() *PostRepo { return &PostRepo{s} }
func (s *Store) Comments() *CommentRepo { return &CommentRepo{s} }
func (s *Store) Replies() *ReplyRepo { return &ReplyRepo{s} }
func (s *Store) Meals() *MealRepo { return &MealRepo{s} }
func (s *Store) MealTypes() *MealTypeRepo { return &MealTypeRepo{s} }

// SetAdmin flips the admin flag; there is no HTTP route for it.
func (s *Store) SetAdmin(userID int64, isAdmin bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[userID]
	if !ok {
		return false
	}
	account.IsAdmin = isAdmin
	s.accounts[userID] = account
	return true
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func sortedIDs[T any](rows map[int64]T) []int64 {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
