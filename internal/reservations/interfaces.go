package reservations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stayharbor/stayharbor-backend/pkg/db/models"
	"github.com/stayharbor/stayharbor-backend/pkg/types"
)

// Repository defines persistence operations for reservation and payment tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateReservation(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindRoom(ctx context.Context, roomID uuid.UUID, lock bool) (*models.Room, error)
	FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut types.Date, lock bool) ([]models.Reservation, error)
	FindReservationWithPayments(ctx context.Context, reservationID uuid.UUID, lock bool) (*models.Reservation, error)
	ListIntersectingWindow(ctx context.Context, start, end types.Date) ([]models.Reservation, error)
}
