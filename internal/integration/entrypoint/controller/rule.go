package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/usecase/rule"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/entrypoint/dto"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
)

// RuleController handles categorization rule endpoints.
type RuleController struct {
	createUseCase *rule.CreateRuleUseCase
	listUseCase   *rule.ListRulesUseCase
	deleteUseCase *rule.DeleteRuleUseCase
}

// NewRuleController creates a new rule controller instance.
func NewRuleController(
	createUseCase *rule.CreateRuleUseCase,
	listUseCase *rule.ListRulesUseCase,
	deleteUseCase *rule.DeleteRuleUseCase,
) *RuleController {
	return &RuleController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /category-rules requests.
func (c *RuleController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	rules, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		respondRuleError(ctx, err)
		return
	}

	out := make([]dto.RuleResponse, len(rules))
	for i, r := range rules {
		out[i] = dto.RuleResponseFromEntity(r)
	}
	ctx.JSON(http.StatusOK, dto.RuleListResponse{Rules: out})
}

// Create handles POST /category-rules requests.
func (c *RuleController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeRuleMissingFields),
		})
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), rule.CreateRuleInput{
		OwnerID:        userID,
		Category:       req.Category,
		Keywords:       req.Keywords,
		BaseConfidence: req.BaseConfidence,
		Priority:       req.Priority,
	})
	if err != nil {
		respondRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RuleResponseFromEntity(created))
}

// Delete handles DELETE /category-rules/:id requests.
func (c *RuleController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID",
			Code:  string(domainerror.ErrCodeRuleMissingFields),
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), id, userID); err != nil {
		respondRuleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// respondRuleError maps a rule error to an HTTP response.
func respondRuleError(ctx *gin.Context, err error) {
	var ruleErr *domainerror.RuleError
	if !errors.As(err, &ruleErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
			Code:  string(domainerror.ErrCodeRuleInternalError),
		})
		return
	}

	status := http.StatusInternalServerError
	switch ruleErr.Code {
	case domainerror.ErrCodeRuleMissingFields,
		domainerror.ErrCodeInvalidRuleConfidence:
		status = http.StatusBadRequest
	case domainerror.ErrCodeRuleNotFound:
		status = http.StatusNotFound
	case domainerror.ErrCodeRuleForbidden:
		status = http.StatusForbidden
	}

	ctx.JSON(status, dto.ErrorResponse{
		Error: ruleErr.Message,
		Code:  string(ruleErr.Code),
	})
}
