package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Rudio1/api-meals/internal/domain/model"
	"github.com/Rudio1/api-meals/internal/services/content"
)

const mealSelect = `
SELECT m.id, m.user_id, m.type_id, t.name, m.description, m.date_time, m.created_at
FROM meals AS m
JOIN meal_types AS t ON t.id = m.type_id
`

type MealRepo struct {
	db DBTX
}

func NewMealRepo(db DBTX) *MealRepo {
	return &MealRepo{db: db}
}

func (r *MealRepo) Create(ctx context.Context, meal model.Meal) (model.Meal, error) {
	if r.db == nil {
		return model.Meal{}, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	if err := r.db.QueryRow(ctx, `
INSERT INTO meals (user_id, type_id, description, date_time, created_at)
VALUES ($1, $2, $3, $4, NOW())
RETURNING id
`, meal.UserID, meal.TypeID, meal.Description, meal.DateTime.UTC()).Scan(&id); err != nil {
		return model.Meal{}, fmt.Errorf("insert meal: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *MealRepo) GetByID(ctx context.Context, id int64) (model.Meal, error) {
	if r.db == nil {
		return model.Meal{}, fmt.Errorf("postgres pool is nil")
	}

	meal, err := scanMeal(r.db.QueryRow(ctx, mealSelect+`WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Meal{}, content.ErrNotFound
		}
		return model.Meal{}, fmt.Errorf("get meal: %w", err)
	}
	return meal, nil
}

func (r *MealRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Meal, error) {
	if r.db == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.db.Query(ctx, mealSelect+`
WHERE m.user_id = $1
ORDER BY m.date_time DESC, m.id DESC
LIMIT $2 OFFSET $3
`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := []model.Meal{}
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	return meals, nil
}

func (r *MealRepo) Update(ctx context.Context, meal model.Meal) (model.Meal, error) {
	if r.db == nil {
		return model.Meal{}, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.db.Exec(ctx, `
UPDATE meals
SET type_id = $2, description = $3, date_time = $4
WHERE id = $1
`, meal.ID, meal.TypeID, meal.Description, meal.DateTime.UTC())
	if err != nil {
		return model.Meal{}, fmt.Errorf("update meal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Meal{}, content.ErrNotFound
	}
	return r.GetByID(ctx, meal.ID)
}

func (r *MealRepo) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM meals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return content.ErrNotFound
	}
	return nil
}

func scanMeal(row pgx.Row) (model.Meal, error) {
	var meal model.Meal
	err := row.Scan(
		&meal.ID,
		&meal.UserID,
		&meal.TypeID,
		&meal.TypeName,
		&meal.Description,
		&meal.DateTime,
		&meal.CreatedAt,
	)
	return meal, err
}

type MealTypeRepo struct {
	db DBTX
	tx TxBeginner
}

func NewMealTypeRepo(db DBTX, tx TxBeginner) *MealTypeRepo {
	return &MealTypeRepo{db: db, tx: tx}
}

func (r *MealTypeRepo) List(ctx context.Context) ([]model.MealType, error) {
	if r.db == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.db.Query(ctx, `SELECT id, name FROM meal_types ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list meal types: %w", err)
	}
	defer rows.Close()

	types := []model.MealType{}
	for rows.Next() {
		var mealType model.MealType
		if err := rows.Scan(&mealType.ID, &mealType.Name); err != nil {
			return nil, fmt.Errorf("scan meal type: %w", err)
		}
		types = append(types, mealType)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal types: %w", err)
	}
	return types, nil
}

func (r *MealTypeRepo) GetByID(ctx context.Context, id int64) (model.MealType, error) {
	if r.db == nil {
		return model.MealType{}, fmt.Errorf("postgres pool is nil")
	}

	var mealType model.MealType
	err := r.db.QueryRow(ctx, `SELECT id, name FROM meal_types WHERE id = $1`, id).Scan(&mealType.ID, &mealType.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MealType{}, content.ErrNotFound
		}
		return model.MealType{}, fmt.Errorf("get meal type: %w", err)
	}
	return mealType, nil
}

func (r *MealTypeRepo) Create(ctx context.Context, name string) (model.MealType, error) {
	if r.db == nil {
		return model.MealType{}, fmt.Errorf("postgres pool is nil")
	}

	var mealType model.MealType
	err := r.db.QueryRow(ctx, `
INSERT INTO meal_types (name)
VALUES ($1)
RETURNING id, name
`, name).Scan(&mealType.ID, &mealType.Name)
	if err != nil {
		if isUniqueViolation(err, "meal_types_name_key") {
			return model.MealType{}, content.ErrConflict
		}
		return model.MealType{}, fmt.Errorf("insert meal type: %w", err)
	}
	return mealType, nil
}

// Delete refuses while meals still reference the type. The usage check and
// the delete share a transaction with the type row locked.
func (r *MealTypeRepo) Delete(ctx context.Context, id int64) error {
	return WithTx(ctx, r.tx, func(ctx context.Context, tx pgx.Tx) error {
		var locked int64
		err := tx.QueryRow(ctx, `SELECT id FROM meal_types WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return content.ErrNotFound
			}
			return fmt.Errorf("lock meal type: %w", err)
		}

		var inUse bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM meals WHERE type_id = $1)`, id).Scan(&inUse); err != nil {
			return fmt.Errorf("check meal type usage: %w", err)
		}
		if inUse {
			return content.ErrConflict
		}

		if _, err := tx.Exec(ctx, `DELETE FROM meal_types WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete meal type: %w", err)
		}
		return nil
	})
}
