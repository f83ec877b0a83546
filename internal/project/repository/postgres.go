package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/luxhub/project-service/internal/model"
	"github.com/luxhub/project-service/internal/project/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Project) error {
	query := `
        INSERT INTO user_projects (
            id, user_id, project_name, project_description, project_location,
            status, priority, start_date, target_completion_date,
            estimated_budget, customer_discount, project_notes,
            created_at, updated_at
        )
        VALUES (
            :id, :user_id, :project_name, :project_description, :project_location,
            :status, :priority, :start_date, :target_completion_date,
            :estimated_budget, :customer_discount, :project_notes,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	query := `SELECT * FROM user_projects WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &project, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProjectFilters) ([]model.Project, int, error) {
	var projects []model.Project
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.UserID != "" {
		conditions = append(conditions, "user_id = :user_id")
		args["user_id"] = f.UserID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM user_projects" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM user_projects" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &projects, args)
	if err != nil {
		return nil, 0, err
	}

	return projects, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Project) error {
	query := `
        UPDATE user_projects
        SET project_name = :project_name,
            project_description = :project_description,
            project_location = :project_location,
            status = :status,
            priority = :priority,
            start_date = :start_date,
            target_completion_date = :target_completion_date,
            estimated_budget = :estimated_budget,
            customer_discount = :customer_discount,
            project_notes = :project_notes,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM user_projects WHERE id = $1", id)
	return err
}

func (r *PGRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE user_projects SET project_notes = $1, updated_at = NOW() WHERE id = $2",
		notes, id,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}
