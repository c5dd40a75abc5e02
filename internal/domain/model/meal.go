package model

import "time"

type MealType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Meal struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	TypeID      int64     `json:"type_id"`
	TypeName    string    `json:"type_name,omitempty"`
	Description string    `json:"description"`
	DateTime    time.Time `json:"date_time"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m Meal) OwnerID() int64 {
	return m.UserID
}
