package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/usecase/transaction"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/entrypoint/dto"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
	listUseCase   *transaction.ListTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		listUseCase:   listUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	transactions, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		respondTransactionError(ctx, err)
		return
	}

	out := make([]dto.TransactionResponse, len(transactions))
	for i, tx := range transactions {
		out[i] = dto.TransactionResponseFromEntity(tx)
	}
	ctx.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: out,
		Total:        len(out),
	})
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeTransactionMissingFields),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeTransactionMissingFields),
		})
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		OwnerID:     userID,
		Date:        req.Date,
		Description: req.Description,
		Vendor:      req.Vendor,
		Amount:      amount,
		Type:        entity.TransactionType(req.Type),
		Category:    req.Category,
	})
	if err != nil {
		respondTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.TransactionResponseFromEntity(created))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionMissingFields),
		})
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeTransactionMissingFields),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeTransactionMissingFields),
		})
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), transaction.UpdateTransactionInput{
		ID:          id,
		OwnerID:     userID,
		Date:        req.Date,
		Description: req.Description,
		Vendor:      req.Vendor,
		Amount:      amount,
		Type:        entity.TransactionType(req.Type),
		Category:    req.Category,
	})
	if err != nil {
		respondTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransactionResponseFromEntity(updated))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionMissingFields),
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		ID:      id,
		OwnerID: userID,
	}); err != nil {
		respondTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// respondTransactionError maps a transaction error to an HTTP response.
func respondTransactionError(ctx *gin.Context, err error) {
	var txErr *domainerror.TransactionError
	if !errors.As(err, &txErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
			Code:  string(domainerror.ErrCodeTransactionInternalError),
		})
		return
	}

	status := http.StatusInternalServerError
	switch txErr.Code {
	case domainerror.ErrCodeTransactionMissingFields,
		domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeNegativeAmount:
		status = http.StatusBadRequest
	case domainerror.ErrCodeTransactionNotFound:
		status = http.StatusNotFound
	case domainerror.ErrCodeTransactionForbidden:
		status = http.StatusForbidden
	}

	ctx.JSON(status, dto.ErrorResponse{
		Error: txErr.Message,
		Code:  string(txErr.Code),
	})
}

func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
