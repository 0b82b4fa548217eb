package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/application/usecase/suggestion"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/entrypoint/dto"
)

// SuggestionController handles the category suggestion endpoint. The
// endpoint is unauthenticated so clients can categorize while drafting a
// transaction; user_id in the body opts into that user's custom rules.
type SuggestionController struct {
	suggestUseCase *suggestion.SuggestCategoryUseCase
}

// NewSuggestionController creates a new suggestion controller instance.
func NewSuggestionController(suggestUseCase *suggestion.SuggestCategoryUseCase) *SuggestionController {
	return &SuggestionController{
		suggestUseCase: suggestUseCase,
	}
}

// SuggestCategory handles POST /suggest-category requests.
func (c *SuggestionController) SuggestCategory(ctx *gin.Context) {
	var req dto.SuggestCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeSuggestionInvalidRequest),
		})
		return
	}

	input := adapter.SuggestionRequest{
		Description: req.Description,
		Vendor:      req.Vendor,
		Amount:      req.Amount,
	}
	if req.Date != "" {
		if date, err := time.Parse("2006-01-02", req.Date); err == nil {
			input.Date = date
		}
	}
	if req.UserID != "" {
		if ownerID, err := uuid.Parse(req.UserID); err == nil {
			input.OwnerID = ownerID
		}
	}

	suggestions, err := c.suggestUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to suggest a category",
			Code:  string(domainerror.ErrCodeSuggestionInternalError),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SuggestCategoryResponseFromEntities(suggestions))
}
