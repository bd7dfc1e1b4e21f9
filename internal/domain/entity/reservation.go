// Package entity defines the core domain entities.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a booking fact owned by the reservation store. This system
// reads reservations for aggregation and records new ones; it never mutates
// an existing reservation.
type Reservation struct {
	ID          uuid.UUID
	PropertyID  string
	TenantID    string
	GuestName   string
	TotalAmount decimal.Decimal
	CheckIn     time.Time // UTC instant
	CheckOut    *time.Time
	Status      ReservationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Property is the minimal property metadata the aggregation layer needs:
// its identity within a tenant, the IANA timezone used for month
// bucketing, and the currency its revenue is reported in.
type Property struct {
	ID       string
	TenantID string
	Name     string
	Timezone string
	Currency string
}
