package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/luxhub/project-service/internal/pkg/logger"
	"github.com/luxhub/project-service/internal/project"
	"github.com/luxhub/project-service/internal/project/dto"
	"github.com/luxhub/project-service/internal/project/usecase"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	uc     project.UseCase
	logger logger.ZapLogger
}

func NewProjectHandler(uc project.UseCase, log logger.ZapLogger) *ProjectHandler {
	return &ProjectHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProjectHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/projects", h.CreateProject)
	mux.HandleFunc("GET /v1/projects", h.ListProjects)
	mux.HandleFunc("GET /v1/projects/{id}", h.GetProject)
	mux.HandleFunc("PUT /v1/projects/{id}", h.UpdateProject)
	mux.HandleFunc("DELETE /v1/projects/{id}", h.DeleteProject)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req dto.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "project_name is required")
		return
	}

	p, err := h.uc.CreateProject(r.Context(), &dto.CreateProjectInput{
		UserID:           req.UserID,
		Name:             req.Name,
		Description:      req.Description,
		Location:         req.Location,
		Status:           req.Status,
		Priority:         req.Priority,
		StartDate:        req.StartDate,
		TargetCompletion: req.TargetCompletion,
		EstimatedBudget:  req.EstimatedBudget,
		CustomerDiscount: req.CustomerDiscount,
		Notes:            req.Notes,
	})
	if err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("failed to get project", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get project")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	projects, total, err := h.uc.ListProjects(r.Context(), &dto.ProjectFilters{
		UserID:   q.Get("user_id"),
		Status:   q.Get("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	writeJSON(w, http.StatusOK, dto.ProjectListResponse{Projects: projects, Total: total})
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req dto.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.uc.UpdateProject(r.Context(), &dto.UpdateProjectInput{
		ID:               r.PathValue("id"),
		Name:             req.Name,
		Description:      req.Description,
		Location:         req.Location,
		Status:           req.Status,
		Priority:         req.Priority,
		StartDate:        req.StartDate,
		TargetCompletion: req.TargetCompletion,
		EstimatedBudget:  req.EstimatedBudget,
		CustomerDiscount: req.CustomerDiscount,
		Notes:            req.Notes,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error("failed to update project", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update project")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("failed to delete project", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
