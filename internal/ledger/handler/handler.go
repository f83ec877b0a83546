package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/luxhub/project-service/internal/ledger"
	"github.com/luxhub/project-service/internal/ledger/dto"
	"github.com/luxhub/project-service/internal/model"
	"github.com/luxhub/project-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// OrderSubmitter is the order-submission collaborator: it ships one round of
// line items and returns the created order.
type OrderSubmitter interface {
	Submit(ctx context.Context, projectID string, sub *ledger.OrderSubmission) (*model.Order, error)
}

type LedgerHandler struct {
	uc     ledger.UseCase
	orders OrderSubmitter
	logger logger.ZapLogger
}

func NewLedgerHandler(uc ledger.UseCase, orders OrderSubmitter, log logger.ZapLogger) *LedgerHandler {
	return &LedgerHandler{
		uc:     uc,
		orders: orders,
		logger: log,
	}
}

func (h *LedgerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/projects/{id}/ledger", h.GetLedger)
	mux.HandleFunc("PATCH /v1/projects/{id}/ledger/items/{itemNumber}", h.SetQuantity)
	mux.HandleFunc("DELETE /v1/projects/{id}/ledger/items/{itemNumber}", h.RemoveItem)
	mux.HandleFunc("POST /v1/projects/{id}/ledger/orders", h.SubmitOrder)
}

func (h *LedgerHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	entries, err := h.uc.Load(r.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to load ledger", zap.String("project_id", projectID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to load project ledger")
		return
	}

	writeJSON(w, http.StatusOK, ledgerResponse(projectID, entries))
}

func (h *LedgerHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	itemNumber := r.PathValue("itemNumber")

	var req dto.SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries, err := h.uc.SetQuantity(r.Context(), projectID, itemNumber, req.Quantity)
	if err != nil {
		h.writeDomainError(w, projectID, err)
		return
	}

	writeJSON(w, http.StatusOK, ledgerResponse(projectID, entries))
}

func (h *LedgerHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	itemNumber := r.PathValue("itemNumber")

	entries, err := h.uc.RemoveItem(r.Context(), projectID, itemNumber)
	if err != nil {
		h.writeDomainError(w, projectID, err)
		return
	}

	writeJSON(w, http.StatusOK, ledgerResponse(projectID, entries))
}

// SubmitOrder ships the unordered remainder as the next round, then refreshes
// the order history so the new entries flip to ordered in the response.
func (h *LedgerHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	sub, err := h.uc.PrepareOrderSubmission(r.Context(), projectID)
	if err != nil {
		h.writeDomainError(w, projectID, err)
		return
	}

	order, err := h.orders.Submit(r.Context(), projectID, sub)
	if err != nil {
		h.logger.Error("order submission failed", zap.String("project_id", projectID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "order submission failed")
		return
	}

	entries, err := h.uc.OnOrderSubmitted(r.Context(), projectID)
	if err != nil {
		// The order went through; degrade to the pre-refresh view.
		h.logger.Warn("post-submission refresh failed", zap.String("project_id", projectID), zap.Error(err))
		entries, _ = h.uc.Entries(projectID)
	}

	writeJSON(w, http.StatusCreated, dto.SubmitOrderResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Items:       sub.Items,
		Entries:     entries,
	})
}

func (h *LedgerHandler) writeDomainError(w http.ResponseWriter, projectID string, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidQuantity):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledger.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrNoNewItems):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrNotLoaded):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("ledger operation failed", zap.String("project_id", projectID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func ledgerResponse(projectID string, entries []ledger.ReconciledEntry) dto.LedgerResponse {
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	return dto.LedgerResponse{
		ProjectID:     projectID,
		Entries:       entries,
		TotalQuantity: total,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}
