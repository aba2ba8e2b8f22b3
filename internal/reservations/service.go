package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stayharbor/stayharbor-backend/pkg/db/models"
	pkgerrors "github.com/stayharbor/stayharbor-backend/pkg/errors"
	"github.com/stayharbor/stayharbor-backend/pkg/metrics"
	"github.com/stayharbor/stayharbor-backend/pkg/money"
	"github.com/stayharbor/stayharbor-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines reservation-level operations beyond repository reads.
type Service interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*CreateReservationResult, error)
	ListByWindow(ctx context.Context, start, end types.Date) ([]ReservationListItem, error)
	AddPayment(ctx context.Context, input AddPaymentInput) (*AddPaymentResult, error)
	CheckAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut types.Date) (*AvailabilityView, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	today func() types.Date
	now   func() time.Time
}

// NewService builds a reservation service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reservations repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:  repo,
		tx:    tx,
		today: types.Today,
		now:   time.Now,
	}, nil
}

func (s *service) CreateReservation(ctx context.Context, input CreateReservationInput) (*CreateReservationResult, error) {
	if input.RoomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "roomId, checkInDate, checkOutDate, and totalAmount are required")
	}
	if !input.CheckInDate.Before(input.CheckOutDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Check-out date must be after check-in date")
	}
	if input.CheckInDate.Before(s.today()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Check-in date cannot be in the past")
	}
	if input.TotalAmount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "totalAmount must be greater than 0")
	}
	if input.InitialPayment < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "initialPayment cannot be negative")
	}
	if input.InitialPayment > input.TotalAmount {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Initial payment cannot exceed total amount")
	}

	var result *CreateReservationResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// Lock the room row first. An empty conflict set locks nothing, so
		// without this two concurrent bookings for a free range would both
		// see zero conflicts and both insert.
		if _, err := repo.FindRoom(ctx, input.RoomID, true); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Room not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load room")
		}

		conflicts, err := repo.FindOverlapping(ctx, input.RoomID, input.CheckInDate, input.CheckOutDate, true)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check conflicts")
		}
		if len(conflicts) > 0 {
			metrics.BookingConflictsTotal.Inc()
			return pkgerrors.New(pkgerrors.CodeConflict, "Room is not available for the selected dates").
				WithDetails(map[string]any{
					"conflictingReservations": conflictViews(conflicts),
				})
		}

		reservation := &models.Reservation{
			RoomID:           input.RoomID,
			CheckInDate:      input.CheckInDate,
			CheckOutDate:     input.CheckOutDate,
			TotalAmountCents: input.TotalAmount,
		}
		if _, err := repo.CreateReservation(ctx, reservation); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create reservation")
		}

		if input.InitialPayment > 0 {
			payment := &models.Payment{
				ReservationID: reservation.ID,
				AmountCents:   input.InitialPayment,
				PaidAt:        s.now(),
			}
			if _, err := repo.CreatePayment(ctx, payment); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create initial payment")
			}
			reservation.Payments = []models.Payment{*payment}
		}

		result = &CreateReservationResult{
			Reservation: reservation,
			Summary: BookingSummary{
				TotalAmount:    input.TotalAmount,
				InitialPayment: input.InitialPayment,
				Outstanding:    input.TotalAmount - input.InitialPayment,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) ListByWindow(ctx context.Context, start, end types.Date) ([]ReservationListItem, error) {
	if start.IsZero() || end.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "startDate and endDate are required")
	}
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "endDate must not be before startDate")
	}

	rows, err := s.repo.ListIntersectingWindow(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reservations")
	}

	items := make([]ReservationListItem, 0, len(rows))
	for _, row := range rows {
		item := ReservationListItem{
			ID:           row.ID,
			CheckInDate:  row.CheckInDate,
			CheckOutDate: row.CheckOutDate,
			TotalAmount:  row.TotalAmountCents,
			TotalPaid:    sumPayments(row.Payments),
		}
		item.Outstanding = item.TotalAmount - item.TotalPaid
		if row.Room != nil {
			item.Room.RoomNumber = row.Room.RoomNumber
			if row.Room.RoomType != nil {
				item.Room.RoomType = row.Room.RoomType.Name
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *service) AddPayment(ctx context.Context, input AddPaymentInput) (*AddPaymentResult, error) {
	if input.ReservationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reservation id required")
	}
	if input.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Amount is required and must be greater than 0")
	}

	var result *AddPaymentResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		reservation, err := repo.FindReservationWithPayments(ctx, input.ReservationID, true)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Reservation not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load reservation")
		}

		totalPaid := sumPayments(reservation.Payments)
		outstanding := reservation.TotalAmountCents - totalPaid
		if input.Amount > outstanding {
			metrics.PaymentsRejectedTotal.Inc()
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("Payment amount (%s) exceeds outstanding balance (%s)", input.Amount, outstanding)).
				WithDetails(map[string]any{
					"outstandingBalance": outstanding,
				})
		}

		payment := &models.Payment{
			ReservationID: reservation.ID,
			AmountCents:   input.Amount,
			PaidAt:        s.now(),
		}
		if _, err := repo.CreatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create payment")
		}

		newPaid := totalPaid + input.Amount
		newOutstanding := reservation.TotalAmountCents - newPaid
		result = &AddPaymentResult{
			Payment: payment,
			Summary: SettlementSummary{
				TotalAmount: reservation.TotalAmountCents,
				TotalPaid:   newPaid,
				Outstanding: newOutstanding,
				IsFullyPaid: newOutstanding == 0,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) CheckAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut types.Date) (*AvailabilityView, error) {
	if roomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room id required")
	}
	if !checkIn.Before(checkOut) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Check-out date must be after check-in date")
	}

	if _, err := s.repo.FindRoom(ctx, roomID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load room")
	}

	conflicts, err := s.repo.FindOverlapping(ctx, roomID, checkIn, checkOut, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check conflicts")
	}

	return &AvailabilityView{
		RoomID:                  roomID,
		CheckInDate:             checkIn,
		CheckOutDate:            checkOut,
		Available:               len(conflicts) == 0,
		ConflictingReservations: conflictViews(conflicts),
	}, nil
}

func conflictViews(rows []models.Reservation) []ConflictView {
	views := make([]ConflictView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ConflictView{
			ID:           row.ID,
			CheckInDate:  row.CheckInDate,
			CheckOutDate: row.CheckOutDate,
		})
	}
	return views
}

func sumPayments(payments []models.Payment) money.Amount {
	var total money.Amount
	for _, payment := range payments {
		total += payment.AmountCents
	}
	return total
}
