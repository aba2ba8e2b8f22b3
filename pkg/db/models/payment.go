package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stayharbor/stayharbor-backend/pkg/money"
)

// Payment is an append-only ledger entry against a reservation's balance.
type Payment struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReservationID uuid.UUID      `gorm:"column:reservation_id;type:uuid;not null;index" json:"reservationId"`
	AmountCents   money.Amount   `gorm:"column:amount_cents;not null" json:"amount"`
	PaidAt        time.Time      `gorm:"column:paid_at;not null" json:"paidAt"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
