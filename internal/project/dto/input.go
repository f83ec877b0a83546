package dto

import "time"

type CreateProjectInput struct {
	UserID           string
	Name             string
	Description      string
	Location         string
	Status           string
	Priority         string
	StartDate        *time.Time
	TargetCompletion *time.Time
	EstimatedBudget  *float64
	CustomerDiscount float64
	Notes            string
}

type UpdateProjectInput struct {
	ID               string
	Name             string
	Description      string
	Location         string
	Status           string
	Priority         string
	StartDate        *time.Time
	TargetCompletion *time.Time
	EstimatedBudget  *float64
	CustomerDiscount float64
	Notes            string
}

type ProjectFilters struct {
	UserID   string
	Status   string
	Page     int
	PageSize int
}
