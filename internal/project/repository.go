package project

import (
	"context"

	"github.com/luxhub/project-service/internal/model"
	"github.com/luxhub/project-service/internal/project/dto"
)

type Repository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	FindAll(ctx context.Context, filters *dto.ProjectFilters) ([]model.Project, int, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id string) error

	// UpdateNotes writes only the notes column; the ledger store persists
	// through this so concurrent edits of other fields are untouched.
	UpdateNotes(ctx context.Context, id, notes string) error
}
