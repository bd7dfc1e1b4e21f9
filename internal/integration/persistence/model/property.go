// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/staymetrics/backend/internal/domain/entity"
)

// PropertyModel represents the properties table in the database. The
// primary key is composite: a property id is only unique within its tenant.
type PropertyModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	TenantID  string    `gorm:"type:varchar(64);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:UTC"`
	Currency  string    `gorm:"type:varchar(3)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the PropertyModel.
func (PropertyModel) TableName() string {
	return "properties"
}

// ToEntity converts a PropertyModel to a domain Property entity.
func (m *PropertyModel) ToEntity() *entity.Property {
	return &entity.Property{
		ID:       m.ID,
		TenantID: m.TenantID,
		Name:     m.Name,
		Timezone: m.Timezone,
		Currency: m.Currency,
	}
}
