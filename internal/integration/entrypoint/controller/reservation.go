// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staymetrics/backend/internal/application/usecase/reservation"
	domainerror "github.com/staymetrics/backend/internal/domain/error"
	"github.com/staymetrics/backend/internal/integration/entrypoint/dto"
	"github.com/staymetrics/backend/internal/integration/entrypoint/middleware"
)

// ReservationController handles reservation endpoints.
type ReservationController struct {
	recordReservationUseCase *reservation.RecordReservationUseCase
}

// NewReservationController creates a new reservation controller instance.
func NewReservationController(
	recordReservationUseCase *reservation.RecordReservationUseCase,
) *ReservationController {
	return &ReservationController{
		recordReservationUseCase: recordReservationUseCase,
	}
}

// Create handles POST /reservations requests.
func (c *ReservationController) Create(ctx *gin.Context) {
	var req dto.CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	input := reservation.RecordReservationInput{
		PropertyID: req.PropertyID,
		TenantID:   middleware.GetTenantIDFromContext(ctx),
		GuestName:  req.GuestName,
		Amount:     req.TotalAmount,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
	}

	res, err := c.recordReservationUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReservationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToReservationResponse(res))
}

// handleReservationError maps reservation errors to HTTP responses.
func (c *ReservationController) handleReservationError(ctx *gin.Context, err error) {
	var resErr *domainerror.ReservationError
	if errors.As(err, &resErr) {
		status := http.StatusBadRequest
		if resErr.Code == domainerror.ErrCodeReservationInternalError {
			status = http.StatusInternalServerError
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: resErr.Message,
			Code:  string(resErr.Code),
		})
		return
	}

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
