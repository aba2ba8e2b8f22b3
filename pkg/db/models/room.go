package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is a bookable unit; many rooms share one RoomType.
type Room struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoomNumber string         `gorm:"column:room_number;not null" json:"roomNumber"`
	RoomTypeID uuid.UUID      `gorm:"column:room_type_id;type:uuid;not null;index" json:"roomTypeId"`
	RoomType   *RoomType      `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
