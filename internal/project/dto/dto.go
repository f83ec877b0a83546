package dto

import (
	"time"

	"github.com/luxhub/project-service/internal/model"
)

type ProjectRequest struct {
	UserID           string     `json:"user_id"`
	Name             string     `json:"project_name"`
	Description      string     `json:"project_description"`
	Location         string     `json:"project_location"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	StartDate        *time.Time `json:"start_date"`
	TargetCompletion *time.Time `json:"target_completion_date"`
	EstimatedBudget  *float64   `json:"estimated_budget"`
	CustomerDiscount float64    `json:"customer_discount"`
	Notes            string     `json:"project_notes"`
}

type ProjectListResponse struct {
	Projects []model.Project `json:"projects"`
	Total    int             `json:"total"`
}
