package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartyPhoto stores one processed image attached to a party. Raw bytes are
// only served through the dedicated byte-stream endpoint.
type PartyPhoto struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	PartyID     string    `gorm:"type:uuid;not null;index" json:"party_id"`
	Data        []byte    `gorm:"type:blob;not null" json:"-"`
	ContentType string    `gorm:"not null" json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *PartyPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
