package project

import (
	"context"

	"github.com/luxhub/project-service/internal/model"
	"github.com/luxhub/project-service/internal/project/dto"
)

type UseCase interface {
	CreateProject(ctx context.Context, input *dto.CreateProjectInput) (*model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context, filters *dto.ProjectFilters) ([]model.Project, int, error)
	UpdateProject(ctx context.Context, input *dto.UpdateProjectInput) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) error

	// Notes accessors used by the ledger store.
	GetNotes(ctx context.Context, projectID string) (string, error)
	UpdateNotes(ctx context.Context, projectID, notes string) error
}
