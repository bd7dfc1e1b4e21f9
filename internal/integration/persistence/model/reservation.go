// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/staymetrics/backend/internal/domain/entity"
)

// ReservationModel represents the reservations table in the database.
// Check-in instants are stored in UTC; month classification happens in the
// aggregation layer using the property's timezone, not in SQL.
type ReservationModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PropertyID   string          `gorm:"type:varchar(64);not null;index:idx_reservations_scope"`
	TenantID     string          `gorm:"type:varchar(64);not null;index:idx_reservations_scope"`
	GuestName    string          `gorm:"type:varchar(255);not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	CheckInDate  time.Time       `gorm:"type:timestamp;not null;index"`
	CheckOutDate *time.Time      `gorm:"type:timestamp"`
	Status       string          `gorm:"type:varchar(16);not null;default:confirmed"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ReservationModel.
func (ReservationModel) TableName() string {
	return "reservations"
}

// ToEntity converts a ReservationModel to a domain Reservation entity.
func (m *ReservationModel) ToEntity() *entity.Reservation {
	return &entity.Reservation{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		TenantID:    m.TenantID,
		GuestName:   m.GuestName,
		TotalAmount: m.TotalAmount,
		CheckIn:     m.CheckInDate,
		CheckOut:    m.CheckOutDate,
		Status:      entity.ReservationStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ReservationFromEntity creates a ReservationModel from a domain Reservation entity.
func ReservationFromEntity(reservation *entity.Reservation) *ReservationModel {
	return &ReservationModel{
		ID:           reservation.ID,
		PropertyID:   reservation.PropertyID,
		TenantID:     reservation.TenantID,
		GuestName:    reservation.GuestName,
		TotalAmount:  reservation.TotalAmount,
		CheckInDate:  reservation.CheckIn,
		CheckOutDate: reservation.CheckOut,
		Status:       string(reservation.Status),
		CreatedAt:    reservation.CreatedAt,
		UpdatedAt:    reservation.UpdatedAt,
	}
}
