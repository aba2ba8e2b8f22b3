package reservations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stayharbor/stayharbor-backend/pkg/db/models"
	"github.com/stayharbor/stayharbor-backend/pkg/types"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reservations repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateReservation(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	if err := r.db.WithContext(ctx).Create(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *repository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// FindRoom loads a room, optionally taking its row FOR UPDATE. The booking
// transaction locks the room so two concurrent bookings for a free range
// serialize on the room row instead of both seeing zero conflicts.
func (r *repository) FindRoom(ctx context.Context, roomID uuid.UUID, lock bool) (*models.Room, error) {
	query := r.db.WithContext(ctx).
		Preload("RoomType").
		Where("id = ?", roomID)
	if lock && r.supportsRowLocks() {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var room models.Room
	if err := query.First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindOverlapping returns reservations whose half-open stay [check_in_date,
// check_out_date) collides with the requested range. The three clauses match
// the overlapping predicate in conflict.go. With lock set the matched rows
// are taken FOR UPDATE so concurrent bookings for the same room serialize.
func (r *repository) FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut types.Date, lock bool) ([]models.Reservation, error) {
	query := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where(`(check_in_date <= ? AND check_out_date > ?)
			OR (check_in_date < ? AND check_out_date >= ?)
			OR (check_in_date >= ? AND check_out_date <= ?)`,
			checkIn, checkIn,
			checkOut, checkOut,
			checkIn, checkOut).
		Order("check_in_date ASC")
	if lock && r.supportsRowLocks() {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var conflicts []models.Reservation
	if err := query.Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *repository) FindReservationWithPayments(ctx context.Context, reservationID uuid.UUID, lock bool) (*models.Reservation, error) {
	query := r.db.WithContext(ctx).
		Preload("Payments").
		Where("id = ?", reservationID)
	if lock && r.supportsRowLocks() {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var reservation models.Reservation
	if err := query.First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListIntersectingWindow returns reservations touching the closed window
// [start, end], with room, room type, and the payment ledger joined in.
// The clauses match the intersectsWindow predicate in conflict.go.
func (r *repository) ListIntersectingWindow(ctx context.Context, start, end types.Date) ([]models.Reservation, error) {
	var rows []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Room.RoomType").
		Preload("Payments").
		Where(`(check_in_date BETWEEN ? AND ?)
			OR (check_out_date BETWEEN ? AND ?)
			OR (check_in_date <= ? AND check_out_date >= ?)`,
			start, end,
			start, end,
			start, end).
		Order("check_in_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// sqlite has no FOR UPDATE; its single-writer model covers the tests.
func (r *repository) supportsRowLocks() bool {
	return r.db.Dialector.Name() == "postgres"
}
