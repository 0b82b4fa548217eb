package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finsight/backend/internal/application/sync"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/entrypoint/dto"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
)

// SummaryController serves the live financial summary.
type SummaryController struct {
	manager *sync.Manager
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(manager *sync.Manager) *SummaryController {
	return &SummaryController{
		manager: manager,
	}
}

// GetSummary handles GET /summary requests. The first call for an owner
// starts their session; subsequent calls return the cached summary, which
// the session keeps current as transactions change.
func (c *SummaryController) GetSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	summary, err := c.manager.Summary(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to load summary",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SummaryResponseFromEntity(summary))
}

// StreamSummary handles GET /summary/stream requests. It pushes the
// current summary immediately and a fresh one after every recompute,
// as server-sent events.
func (c *SummaryController) StreamSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	session := c.manager.Session(userID)
	if session == nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Summary service is shutting down",
		})
		return
	}

	if err := session.WaitReady(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to load summary",
		})
		return
	}

	updates, cancel := session.Subscribe()
	defer cancel()

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	// Current state first so the client renders without waiting for a change.
	first := true
	ctx.Stream(func(w io.Writer) bool {
		if first {
			first = false
			if current := session.Summary(); current != nil {
				ctx.SSEvent("summary", dto.SummaryResponseFromEntity(current))
				return true
			}
		}

		select {
		case summary, open := <-updates:
			if !open {
				return false
			}
			ctx.SSEvent("summary", dto.SummaryResponseFromEntity(summary))
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
