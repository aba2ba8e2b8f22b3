package reservations

import (
	"github.com/google/uuid"

	"github.com/stayharbor/stayharbor-backend/pkg/db/models"
	"github.com/stayharbor/stayharbor-backend/pkg/money"
	"github.com/stayharbor/stayharbor-backend/pkg/types"
)

// CreateReservationInput carries the booking request after decode/validation.
// InitialPayment of zero means no opening payment is recorded.
type CreateReservationInput struct {
	RoomID         uuid.UUID
	CheckInDate    types.Date
	CheckOutDate   types.Date
	TotalAmount    money.Amount
	InitialPayment money.Amount
}

// ConflictView is the per-reservation shape returned with a booking conflict.
type ConflictView struct {
	ID           uuid.UUID  `json:"id"`
	CheckInDate  types.Date `json:"checkInDate"`
	CheckOutDate types.Date `json:"checkOutDate"`
}

// BookingSummary is the payment summary attached to a successful booking.
type BookingSummary struct {
	TotalAmount    money.Amount `json:"totalAmount"`
	InitialPayment money.Amount `json:"initialPayment"`
	Outstanding    money.Amount `json:"outstanding"`
}

// CreateReservationResult pairs the stored row with its opening summary.
type CreateReservationResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Summary     BookingSummary      `json:"paymentSummary"`
}

// RoomSummary is the joined room info shown in the date-range listing.
type RoomSummary struct {
	RoomNumber string `json:"roomNumber"`
	RoomType   string `json:"roomType"`
}

// ReservationListItem is one row of the date-range listing with the paid and
// outstanding amounts aggregated from the payment ledger.
type ReservationListItem struct {
	ID           uuid.UUID    `json:"id"`
	CheckInDate  types.Date   `json:"checkInDate"`
	CheckOutDate types.Date   `json:"checkOutDate"`
	TotalAmount  money.Amount `json:"totalAmount"`
	TotalPaid    money.Amount `json:"totalPaid"`
	Outstanding  money.Amount `json:"outstanding"`
	Room         RoomSummary  `json:"room"`
}

// AddPaymentInput carries an installment against an existing reservation.
type AddPaymentInput struct {
	ReservationID uuid.UUID
	Amount        money.Amount
}

// SettlementSummary reflects the balance after a payment lands.
type SettlementSummary struct {
	TotalAmount money.Amount `json:"totalAmount"`
	TotalPaid   money.Amount `json:"totalPaid"`
	Outstanding money.Amount `json:"outstanding"`
	IsFullyPaid bool         `json:"isFullyPaid"`
}

// AddPaymentResult pairs the stored payment with the refreshed summary.
type AddPaymentResult struct {
	Payment *models.Payment   `json:"payment"`
	Summary SettlementSummary `json:"paymentSummary"`
}

// AvailabilityView answers a read-only availability query for one room.
type AvailabilityView struct {
	RoomID                  uuid.UUID      `json:"roomId"`
	CheckInDate             types.Date     `json:"checkInDate"`
	CheckOutDate            types.Date     `json:"checkOutDate"`
	Available               bool           `json:"available"`
	ConflictingReservations []ConflictView `json:"conflictingReservations"`
}
