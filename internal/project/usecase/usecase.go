package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/luxhub/project-service/internal/model"
	"github.com/luxhub/project-service/internal/pkg/logger"
	"github.com/luxhub/project-service/internal/project"
	"github.com/luxhub/project-service/internal/project/dto"
)

var ErrProjectNotFound = errors.New("project not found")

type projectUseCase struct {
	repo   project.Repository
	logger logger.ZapLogger
}

func NewProjectUseCase(repo project.Repository, log logger.ZapLogger) project.UseCase {
	return &projectUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *projectUseCase) CreateProject(ctx context.Context, input *dto.CreateProjectInput) (*model.Project, error) {
	now := time.Now()

	status := input.Status
	if status == "" {
		status = model.ProjectStatusPlanning
	}
	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	p := &model.Project{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:           input.UserID,
		Name:             input.Name,
		Description:      optional(input.Description),
		Location:         optional(input.Location),
		Status:           status,
		Priority:         priority,
		StartDate:        input.StartDate,
		TargetCompletion: input.TargetCompletion,
		EstimatedBudget:  input.EstimatedBudget,
		CustomerDiscount: input.CustomerDiscount,
		Notes:            input.Notes,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *projectUseCase) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *projectUseCase) ListProjects(ctx context.Context, filters *dto.ProjectFilters) ([]model.Project, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *projectUseCase) UpdateProject(ctx context.Context, input *dto.UpdateProjectInput) (*model.Project, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}

	p.Name = input.Name
	p.Description = optional(input.Description)
	p.Location = optional(input.Location)
	p.Status = input.Status
	p.Priority = input.Priority
	p.StartDate = input.StartDate
	p.TargetCompletion = input.TargetCompletion
	p.EstimatedBudget = input.EstimatedBudget
	p.CustomerDiscount = input.CustomerDiscount
	p.Notes = input.Notes
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *projectUseCase) DeleteProject(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *projectUseCase) GetNotes(ctx context.Context, projectID string) (string, error) {
	p, err := uc.repo.FindByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", ErrProjectNotFound
	}
	return p.Notes, nil
}

func (uc *projectUseCase) UpdateNotes(ctx context.Context, projectID, notes string) error {
	return uc.repo.UpdateNotes(ctx, projectID, notes)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
