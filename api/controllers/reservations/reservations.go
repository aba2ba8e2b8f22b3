package reservations

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayharbor/stayharbor-backend/api/responses"
	"github.com/stayharbor/stayharbor-backend/api/validators"
	internalreservations "github.com/stayharbor/stayharbor-backend/internal/reservations"
	"github.com/stayharbor/stayharbor-backend/pkg/db/models"
	pkgerrors "github.com/stayharbor/stayharbor-backend/pkg/errors"
	"github.com/stayharbor/stayharbor-backend/pkg/logger"
	"github.com/stayharbor/stayharbor-backend/pkg/money"
	"github.com/stayharbor/stayharbor-backend/pkg/types"
)

type createReservationRequest struct {
	RoomID         uuid.UUID    `json:"roomId"`
	CheckInDate    types.Date   `json:"checkInDate"`
	CheckOutDate   types.Date   `json:"checkOutDate"`
	TotalAmount    money.Amount `json:"totalAmount"`
	InitialPayment money.Amount `json:"initialPayment"`
}

type addPaymentRequest struct {
	Amount money.Amount `json:"amount"`
}

type createReservationResponse struct {
	Message        string                              `json:"message"`
	Reservation    *models.Reservation                 `json:"reservation"`
	PaymentSummary internalreservations.BookingSummary `json:"paymentSummary"`
}

type addPaymentResponse struct {
	Message        string                                 `json:"message"`
	Payment        *models.Payment                        `json:"payment"`
	PaymentSummary internalreservations.SettlementSummary `json:"paymentSummary"`
}

// Create books a room for a date range, optionally recording an opening payment.
func Create(svc internalreservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReservationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if req.RoomID == uuid.Nil || req.CheckInDate.IsZero() || req.CheckOutDate.IsZero() || req.TotalAmount == 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "roomId, checkInDate, checkOutDate, and totalAmount are required"))
			return
		}

		result, err := svc.CreateReservation(r.Context(), internalreservations.CreateReservationInput{
			RoomID:         req.RoomID,
			CheckInDate:    req.CheckInDate,
			CheckOutDate:   req.CheckOutDate,
			TotalAmount:    req.TotalAmount,
			InitialPayment: req.InitialPayment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithReservationID(r.Context(), result.Reservation.ID.String())
		logg.Info(ctx, "reservation created")

		responses.WriteSuccessStatus(w, http.StatusCreated, createReservationResponse{
			Message:        "Reservation created successfully",
			Reservation:    result.Reservation,
			PaymentSummary: result.Summary,
		})
	}
}

// ListByDate returns reservations touching the closed window [startDate, endDate].
func ListByDate(svc internalreservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := validators.ParseQueryDate(r, "startDate")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.ParseQueryDate(r, "endDate")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListByWindow(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// AddPayment records an installment against the reservation's outstanding balance.
func AddPayment(svc internalreservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reservationID, err := parseReservationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req addPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddPayment(r.Context(), internalreservations.AddPaymentInput{
			ReservationID: reservationID,
			Amount:        req.Amount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithReservationID(r.Context(), reservationID.String())
		logg.Info(ctx, "payment recorded")

		responses.WriteSuccessStatus(w, http.StatusCreated, addPaymentResponse{
			Message:        "Payment added successfully",
			Payment:        result.Payment,
			PaymentSummary: result.Summary,
		})
	}
}

func parseReservationID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reservation id must be a valid UUID")
	}
	return id, nil
}
