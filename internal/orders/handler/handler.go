package handler

import (
	"encoding/json"
	"net/http"

	"github.com/luxhub/project-service/internal/model"
	"github.com/luxhub/project-service/internal/orders"
	"github.com/luxhub/project-service/internal/pkg/logger"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     orders.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc orders.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/projects/{id}/orders", h.ListOrders)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	list, err := h.uc.ListOrders(r.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to list orders", zap.String("project_id", projectID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if list == nil {
		list = []model.Order{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": list})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
