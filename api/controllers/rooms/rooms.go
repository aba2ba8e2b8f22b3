package rooms

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayharbor/stayharbor-backend/api/responses"
	"github.com/stayharbor/stayharbor-backend/api/validators"
	internalreservations "github.com/stayharbor/stayharbor-backend/internal/reservations"
	internalrooms "github.com/stayharbor/stayharbor-backend/internal/rooms"
	pkgerrors "github.com/stayharbor/stayharbor-backend/pkg/errors"
	"github.com/stayharbor/stayharbor-backend/pkg/logger"
)

// List returns the room inventory with room types joined.
func List(repo internalrooms.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms, err := repo.ListRooms(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rooms"))
			return
		}
		responses.WriteSuccess(w, rooms)
	}
}

// ListTypes returns the room type reference data.
func ListTypes(repo internalrooms.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomTypes, err := repo.ListRoomTypes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list room types"))
			return
		}
		responses.WriteSuccess(w, roomTypes)
	}
}

// Availability runs the conflict check for a room and date range.
func Availability(svc internalreservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID, err := parseRoomID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithRoomID(r.Context(), roomID.String())

		checkIn, err := validators.ParseQueryDate(r, "checkInDate")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		checkOut, err := validators.ParseQueryDate(r, "checkOutDate")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.CheckAvailability(ctx, roomID, checkIn, checkOut)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		logg.Info(ctx, "availability checked")
		responses.WriteSuccess(w, view)
	}
}

func parseRoomID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "room id must be a valid UUID")
	}
	return id, nil
}
