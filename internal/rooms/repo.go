package rooms

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stayharbor/stayharbor-backend/pkg/db/models"
)

// Repository defines persistence operations for room reference data.
type Repository interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListRoomTypes(ctx context.Context) ([]models.RoomType, error)
	FindRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error)
	FindRoomTypeByName(ctx context.Context, name string) (*models.RoomType, error)
	FindRoomByNumber(ctx context.Context, number string) (*models.Room, error)
	CreateRoomType(ctx context.Context, roomType *models.RoomType) (*models.RoomType, error)
	CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a rooms repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Preload("RoomType").
		Order("room_number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *repository) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var roomTypes []models.RoomType
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&roomTypes).Error
	if err != nil {
		return nil, err
	}
	return roomTypes, nil
}

func (r *repository) FindRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("RoomType").
		Where("id = ?", roomID).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repository) FindRoomTypeByName(ctx context.Context, name string) (*models.RoomType, error) {
	var roomType models.RoomType
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&roomType).Error
	if err != nil {
		return nil, err
	}
	return &roomType, nil
}

func (r *repository) FindRoomByNumber(ctx context.Context, number string) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Where("room_number = ?", number).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repository) CreateRoomType(ctx context.Context, roomType *models.RoomType) (*models.RoomType, error) {
	if err := r.db.WithContext(ctx).Create(roomType).Error; err != nil {
		return nil, err
	}
	return roomType, nil
}

func (r *repository) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}
