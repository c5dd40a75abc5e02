package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rudio1/api-meals/internal/domain/model"
	"github.com/Rudio1/api-meals/internal/domain/rules"
	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
)

// MealTypeStore.Delete reports ErrConflict while meals still reference the type.
type MealTypeStore interface {
	List(ctx context.Context) ([]model.MealType, error)
	GetByID(ctx context.Context, id int64) (model.MealType, error)
	Create(ctx context.Context, name string) (model.MealType, error)
	Delete(ctx context.Context, id int64) error
}

type MealStore interface {
	Create(ctx context.Context, meal model.Meal) (model.Meal, error)
	GetByID(ctx context.Context, id int64) (model.Meal, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Meal, error)
	Update(ctx context.Context, meal model.Meal) (model.Meal, error)
	Delete(ctx context.Context, id int64) error
}

type MealInput struct {
	TypeID      int64
	Description string
	DateTime    time.Time
}

type MealPatch struct {
	TypeID      *int64
	Description *string
	DateTime    *time.Time
}

type MealService struct {
	meals MealStore
	types MealTypeStore
}

func NewMealService(meals MealStore, types MealTypeStore) *MealService {
	return &MealService{meals: meals, types: types}
}

func (s *MealService) ListTypes(ctx context.Context) ([]model.MealType, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list meal types: %w", err)
	}
	return types, nil
}

// CreateType and DeleteType are reachable only through admin-gated routes.
func (s *MealService) CreateType(ctx context.Context, name string) (model.MealType, error) {
	name = strings.TrimSpace(name)
	if !rules.LengthBetween(name, 1, rules.MealTypeNameMaxLength) {
		return model.MealType{}, validationError("name is required")
	}

	created, err := s.types.Create(ctx, name)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return model.MealType{}, err
		}
		return model.MealType{}, fmt.Errorf("create meal type: %w", err)
	}
	return created, nil
}

func (s *MealService) DeleteType(ctx context.Context, id int64) error {
	if id <= 0 {
		return validationError("id must be a positive number")
	}
	if err := s.types.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
			return err
		}
		return fmt.Errorf("delete meal type: %w", err)
	}
	return nil
}

func (s *MealService) Create(ctx context.Context, identity authsvc.Identity, in MealInput) (model.Meal, error) {
	meal := model.Meal{
		UserID:      identity.UserID,
		TypeID:      in.TypeID,
		Description: strings.TrimSpace(in.Description),
		DateTime:    in.DateTime,
	}
	if err := s.validateMeal(ctx, meal); err != nil {
		return model.Meal{}, err
	}

	created, err := s.meals.Create(ctx, meal)
	if err != nil {
		return model.Meal{}, fmt.Errorf("create meal: %w", err)
	}
	return created, nil
}

func (s *MealService) ListMine(ctx context.Context, identity authsvc.Identity, limit, offset int) ([]model.Meal, error) {
	if offset < 0 {
		offset = 0
	}
	meals, err := s.meals.ListByUser(ctx, identity.UserID, rules.ClampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

// Get is owner-only: meals are private to the account that logged them.
func (s *MealService) Get(ctx context.Context, identity authsvc.Identity, id int64) (model.Meal, error) {
	return s.ownedMeal(ctx, identity, id)
}

func (s *MealService) Update(ctx context.Context, identity authsvc.Identity, id int64, patch MealPatch) (model.Meal, error) {
	if patch.TypeID == nil && patch.Description == nil && patch.DateTime == nil {
		return model.Meal{}, validationError("at least one field must be provided")
	}

	meal, err := s.ownedMeal(ctx, identity, id)
	if err != nil {
		return model.Meal{}, err
	}
	if patch.TypeID != nil {
		meal.TypeID = *patch.TypeID
	}
	if patch.Description != nil {
		meal.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.DateTime != nil {
		meal.DateTime = *patch.DateTime
	}
	if err := s.validateMeal(ctx, meal); err != nil {
		return model.Meal{}, err
	}

	updated, err := s.meals.Update(ctx, meal)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Meal{}, err
		}
		return model.Meal{}, fmt.Errorf("update meal: %w", err)
	}
	return updated, nil
}

func (s *MealService) Delete(ctx context.Context, identity authsvc.Identity, id int64) error {
	if _, err := s.ownedMeal(ctx, identity, id); err != nil {
		return err
	}
	if err := s.meals.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

func (s *MealService) ownedMeal(ctx context.Context, identity authsvc.Identity, id int64) (model.Meal, error) {
	if id <= 0 {
		return model.Meal{}, validationError("id must be a positive number")
	}

	meal, err := s.meals.GetByID(ctx, id)
	if err != nil {
		return model.Meal{}, err
	}
	if !authsvc.IsOwner(identity, meal) {
		return model.Meal{}, ErrForbidden
	}
	return meal, nil
}

func (s *MealService) validateMeal(ctx context.Context, meal model.Meal) error {
	if meal.TypeID <= 0 || meal.Description == "" || meal.DateTime.IsZero() {
		return validationError("type_id, description and date_time are required")
	}
	if !rules.LengthBetween(meal.Description, 1, rules.MealDescriptionMaxLength) {
		return validationError(fmt.Sprintf("description must be at most %d characters", rules.MealDescriptionMaxLength))
	}

	if _, err := s.types.GetByID(ctx, meal.TypeID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return validationError("meal type not found")
		}
		return fmt.Errorf("get meal type: %w", err)
	}
	return nil
}
