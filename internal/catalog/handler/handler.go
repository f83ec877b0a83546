package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/luxhub/project-service/internal/catalog"
	"github.com/luxhub/project-service/internal/catalog/dto"
	"github.com/luxhub/project-service/internal/pkg/logger"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/products", h.ListProducts)
	mux.HandleFunc("GET /v1/products/{itemNumber}", h.GetProduct)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), r.PathValue("itemNumber"))
	if err != nil {
		h.logger.Error("failed to get product", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	products, total, err := h.uc.ListProducts(r.Context(), &dto.ProductFilters{
		SearchQuery:   q.Get("q"),
		AvailableOnly: q.Get("available") == "true",
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductListResponse{Products: products, Total: total})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
