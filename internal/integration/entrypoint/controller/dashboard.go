// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/staymetrics/backend/internal/application/usecase/revenue"
	domainerror "github.com/staymetrics/backend/internal/domain/error"
	"github.com/staymetrics/backend/internal/integration/entrypoint/dto"
	"github.com/staymetrics/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles revenue dashboard endpoints.
type DashboardController struct {
	getRevenueSummaryUseCase *revenue.GetRevenueSummaryUseCase
	getMonthlyRevenueUseCase *revenue.GetMonthlyRevenueUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getRevenueSummaryUseCase *revenue.GetRevenueSummaryUseCase,
	getMonthlyRevenueUseCase *revenue.GetMonthlyRevenueUseCase,
) *DashboardController {
	return &DashboardController{
		getRevenueSummaryUseCase: getRevenueSummaryUseCase,
		getMonthlyRevenueUseCase: getMonthlyRevenueUseCase,
	}
}

// GetSummary handles GET /dashboard/summary requests.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	propertyID := ctx.Query("property_id")
	if propertyID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "property_id is required",
			Code:  string(domainerror.ErrCodeMissingPropertyID),
		})
		return
	}

	input := revenue.GetRevenueSummaryInput{
		PropertyID: propertyID,
		TenantID:   middleware.GetTenantIDFromContext(ctx),
	}

	aggregate, err := c.getRevenueSummaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRevenueError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRevenueSummaryResponse(aggregate))
}

// GetMonthlySummary handles GET /dashboard/summary/monthly requests.
func (c *DashboardController) GetMonthlySummary(ctx *gin.Context) {
	propertyID := ctx.Query("property_id")
	if propertyID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "property_id is required",
			Code:  string(domainerror.ErrCodeMissingPropertyID),
		})
		return
	}

	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil || year < 1 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "year must be a positive integer",
			Code:  string(domainerror.ErrCodeInvalidYear),
		})
		return
	}

	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "month must be an integer between 1 and 12",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return
	}

	input := revenue.GetMonthlyRevenueInput{
		PropertyID: propertyID,
		TenantID:   middleware.GetTenantIDFromContext(ctx),
		Year:       year,
		Month:      month,
	}

	output, err := c.getMonthlyRevenueUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRevenueError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyRevenueResponse(output))
}

// handleRevenueError maps revenue errors to HTTP responses. Internal
// failures deliberately return an opaque 500: a failed aggregation must
// never be dressed up as a fabricated total.
func (c *DashboardController) handleRevenueError(ctx *gin.Context, err error) {
	var revErr *domainerror.RevenueError
	if errors.As(err, &revErr) {
		ctx.JSON(statusCodeForRevenueError(revErr.Code), dto.ErrorResponse{
			Error: revErr.Message,
			Code:  string(revErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForRevenueError maps revenue error codes to HTTP status codes.
func statusCodeForRevenueError(code domainerror.RevenueErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingPropertyID,
		domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeInvalidYear:
		return http.StatusBadRequest
	case domainerror.ErrCodePropertyNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeStoreUnavailable,
		domainerror.ErrCodeStoreTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
