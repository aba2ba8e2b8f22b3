package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stayharbor/stayharbor-backend/pkg/money"
	"github.com/stayharbor/stayharbor-backend/pkg/types"
)

// Reservation books a room for the half-open date range
// [CheckInDate, CheckOutDate): the checkout day is free for the next guest.
// Rows are never mutated after creation, only soft-deleted.
type Reservation struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoomID           uuid.UUID      `gorm:"column:room_id;type:uuid;not null;index" json:"roomId"`
	CheckInDate      types.Date     `gorm:"column:check_in_date;type:date;not null" json:"checkInDate"`
	CheckOutDate     types.Date     `gorm:"column:check_out_date;type:date;not null" json:"checkOutDate"`
	TotalAmountCents money.Amount   `gorm:"column:total_amount_cents;not null" json:"totalAmount"`
	Room             *Room          `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Payments         []Payment      `gorm:"foreignKey:ReservationID" json:"payments,omitempty"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
