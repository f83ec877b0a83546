package model

import "time"

// Project mirrors the user_projects table. The ledger subsystem reads and
// writes only Notes; every other column belongs to the CRUD screens.
type Project struct {
	BaseModel
	UserID           string     `db:"user_id" json:"user_id"`
	Name             string     `db:"project_name" json:"project_name"`
	Description      *string    `db:"project_description" json:"project_description"`
	Location         *string    `db:"project_location" json:"project_location"`
	Status           string     `db:"status" json:"status"`
	Priority         string     `db:"priority" json:"priority"`
	StartDate        *time.Time `db:"start_date" json:"start_date"`
	TargetCompletion *time.Time `db:"target_completion_date" json:"target_completion_date"`
	EstimatedBudget  *float64   `db:"estimated_budget" json:"estimated_budget"`
	CustomerDiscount float64    `db:"customer_discount" json:"customer_discount"`
	Notes            string     `db:"project_notes" json:"project_notes"`
}

// Project statuses as used by the screens.
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCancelled = "cancelled"
)
