package dto

import "github.com/luxhub/project-service/internal/ledger"

type LedgerResponse struct {
	ProjectID     string                   `json:"project_id"`
	Entries       []ledger.ReconciledEntry `json:"entries"`
	TotalQuantity int                      `json:"total_quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type SubmitOrderResponse struct {
	OrderID     string                   `json:"order_id"`
	OrderNumber int                      `json:"order_number"`
	Items       []ledger.LineItem        `json:"items"`
	Entries     []ledger.ReconciledEntry `json:"entries"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
