// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/staymetrics/backend/internal/domain/entity"
)

// CreateReservationRequest represents the request body for recording a
// reservation. The amount is a decimal string so exact values survive the
// wire.
type CreateReservationRequest struct {
	PropertyID  string     `json:"property_id" binding:"required"`
	GuestName   string     `json:"guest_name" binding:"required"`
	TotalAmount string     `json:"total_amount" binding:"required"`
	CheckIn     time.Time  `json:"check_in" binding:"required"`
	CheckOut    *time.Time `json:"check_out"`
}

// ReservationResponse represents a recorded reservation.
type ReservationResponse struct {
	ID          string     `json:"id"`
	PropertyID  string     `json:"property_id"`
	TenantID    string     `json:"tenant_id"`
	GuestName   string     `json:"guest_name"`
	TotalAmount string     `json:"total_amount"`
	CheckIn     time.Time  `json:"check_in"`
	CheckOut    *time.Time `json:"check_out,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToReservationResponse converts a domain Reservation to the response DTO.
func ToReservationResponse(res *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          res.ID.String(),
		PropertyID:  res.PropertyID,
		TenantID:    res.TenantID,
		GuestName:   res.GuestName,
		TotalAmount: res.TotalAmount.String(),
		CheckIn:     res.CheckIn,
		CheckOut:    res.CheckOut,
		Status:      string(res.Status),
		CreatedAt:   res.CreatedAt,
	}
}
