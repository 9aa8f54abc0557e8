package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/hbarnes/penny/internal/category"
	"github.com/hbarnes/penny/internal/transaction"
)

type transactionResponse struct {
	ID          uuid.UUID         `json:"id"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Category    category.Category `json:"category"`
	Amount      float64           `json:"amount"`
	Type        transaction.Type  `json:"type"`
}

func toResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date,
		Description: tx.Description,
		Category:    tx.Category,
		Amount:      tx.Amount,
		Type:        tx.Type,
	}
}

func toResponseList(txs []transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
