package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stayharbor/stayharbor-backend/pkg/db/models"
	pkgerrors "github.com/stayharbor/stayharbor-backend/pkg/errors"
	"github.com/stayharbor/stayharbor-backend/pkg/money"
	"github.com/stayharbor/stayharbor-backend/pkg/types"
)

type stubReservationsRepo struct {
	room         *models.Room
	reservation  *models.Reservation
	conflicts    []models.Reservation
	listRows     []models.Reservation
	created      []*models.Reservation
	payments     []*models.Payment
	lockRequests []bool

	roomLockRequests []bool

	createReservationErr error
	findReservationErr   error
}

func (s *stubReservationsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubReservationsRepo) CreateReservation(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	if s.createReservationErr != nil {
		return nil, s.createReservationErr
	}
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	s.created = append(s.created, reservation)
	return reservation, nil
}

func (s *stubReservationsRepo) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	s.payments = append(s.payments, payment)
	return payment, nil
}

func (s *stubReservationsRepo) FindRoom(ctx context.Context, roomID uuid.UUID, lock bool) (*models.Room, error) {
	s.roomLockRequests = append(s.roomLockRequests, lock)
	if s.room == nil || s.room.ID != roomID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.room, nil
}

func (s *stubReservationsRepo) FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut types.Date, lock bool) ([]models.Reservation, error) {
	s.lockRequests = append(s.lockRequests, lock)
	return s.conflicts, nil
}

func (s *stubReservationsRepo) FindReservationWithPayments(ctx context.Context, reservationID uuid.UUID, lock bool) (*models.Reservation, error) {
	s.lockRequests = append(s.lockRequests, lock)
	if s.findReservationErr != nil {
		return nil, s.findReservationErr
	}
	if s.reservation == nil || s.reservation.ID != reservationID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.reservation, nil
}

func (s *stubReservationsRepo) ListIntersectingWindow(ctx context.Context, start, end types.Date) ([]models.Reservation, error) {
	return s.listRows, nil
}

type stubTxRunner struct {
	calls int
}

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository) (*service, *stubTxRunner) {
	t.Helper()

	runner := &stubTxRunner{}
	svc, err := NewService(repo, runner)
	require.NoError(t, err)

	impl := svc.(*service)
	impl.today = func() types.Date { return types.NewDate(2026, time.March, 1) }
	impl.now = func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) }
	return impl, runner
}

func validInput(roomID uuid.UUID) CreateReservationInput {
	return CreateReservationInput{
		RoomID:       roomID,
		CheckInDate:  types.NewDate(2026, time.March, 10),
		CheckOutDate: types.NewDate(2026, time.March, 15),
		TotalAmount:  money.Amount(50000),
	}
}

func TestCreateReservation_success(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomNumber: "101"}
	repo := &stubReservationsRepo{room: room}
	svc, runner := newTestService(t, repo)

	input := validInput(room.ID)
	input.InitialPayment = money.Amount(20000)

	result, err := svc.CreateReservation(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, runner.calls)
	require.Len(t, repo.created, 1)
	assert.Equal(t, room.ID, repo.created[0].RoomID)
	require.Len(t, repo.payments, 1)
	assert.Equal(t, money.Amount(20000), repo.payments[0].AmountCents)
	assert.Equal(t, repo.created[0].ID, repo.payments[0].ReservationID)

	assert.Equal(t, money.Amount(50000), result.Summary.TotalAmount)
	assert.Equal(t, money.Amount(20000), result.Summary.InitialPayment)
	assert.Equal(t, money.Amount(30000), result.Summary.Outstanding)

	// the conflict check inside the transaction must take the lock
	require.Len(t, repo.lockRequests, 1)
	assert.True(t, repo.lockRequests[0])
}

func TestCreateReservation_locksRoomRow(t *testing.T) {
	// Locking only the matched conflicts is not enough: when the range is
	// free the conflict set is empty and nothing is locked, so two
	// concurrent bookings would both see zero conflicts and both insert.
	// The room row itself must be locked inside the transaction.
	room := &models.Room{ID: uuid.New(), RoomNumber: "101"}
	repo := &stubReservationsRepo{room: room}
	svc, runner := newTestService(t, repo)

	_, err := svc.CreateReservation(context.Background(), validInput(room.ID))
	require.NoError(t, err)

	assert.Equal(t, 1, runner.calls)
	require.Len(t, repo.roomLockRequests, 1)
	assert.True(t, repo.roomLockRequests[0], "room lookup inside the booking transaction must request the row lock")
}

func TestCreateReservation_noInitialPayment(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomNumber: "101"}
	repo := &stubReservationsRepo{room: room}
	svc, _ := newTestService(t, repo)

	result, err := svc.CreateReservation(context.Background(), validInput(room.ID))
	require.NoError(t, err)

	assert.Empty(t, repo.payments)
	assert.Equal(t, money.Amount(0), result.Summary.InitialPayment)
	assert.Equal(t, money.Amount(50000), result.Summary.Outstanding)
}

func TestCreateReservation_validation(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomNumber: "101"}

	cases := []struct {
		name    string
		mutate  func(*CreateReservationInput)
		message string
	}{
		{
			name:    "checkout equals check-in",
			mutate:  func(in *CreateReservationInput) { in.CheckOutDate = in.CheckInDate },
			message: "Check-out date must be after check-in date",
		},
		{
			name: "checkout before check-in",
			mutate: func(in *CreateReservationInput) {
				in.CheckInDate = types.NewDate(2026, time.March, 15)
				in.CheckOutDate = types.NewDate(2026, time.March, 10)
			},
			message: "Check-out date must be after check-in date",
		},
		{
			name: "check-in in the past",
			mutate: func(in *CreateReservationInput) {
				in.CheckInDate = types.NewDate(2026, time.February, 20)
				in.CheckOutDate = types.NewDate(2026, time.February, 25)
			},
			message: "Check-in date cannot be in the past",
		},
		{
			name:    "zero total amount",
			mutate:  func(in *CreateReservationInput) { in.TotalAmount = 0 },
			message: "totalAmount must be greater than 0",
		},
		{
			name:    "negative initial payment",
			mutate:  func(in *CreateReservationInput) { in.InitialPayment = money.Amount(-100) },
			message: "initialPayment cannot be negative",
		},
		{
			name:    "initial payment exceeds total",
			mutate:  func(in *CreateReservationInput) { in.InitialPayment = money.Amount(60000) },
			message: "Initial payment cannot exceed total amount",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubReservationsRepo{room: room}
			svc, runner := newTestService(t, repo)

			input := validInput(room.ID)
			tc.mutate(&input)

			_, err := svc.CreateReservation(context.Background(), input)
			require.Error(t, err)

			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
			assert.Equal(t, tc.message, appErr.Message())
			assert.Zero(t, runner.calls, "validation failures must not open a transaction")
			assert.Empty(t, repo.created)
		})
	}
}

func TestCreateReservation_checkInTodayIsValid(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomNumber: "101"}
	repo := &stubReservationsRepo{room: room}
	svc, _ := newTestService(t, repo)

	input := validInput(room.ID)
	input.CheckInDate = types.NewDate(2026, time.March, 1)
	input.CheckOutDate = types.NewDate(2026, time.March, 2)

	_, err := svc.CreateReservation(context.Background(), input)
	require.NoError(t, err)
}

func TestCreateReservation_roomNotFound(t *testing.T) {
	repo := &stubReservationsRepo{}
	svc, _ := newTestService(t, repo)

	_, err := svc.CreateReservation(context.Background(), validInput(uuid.New()))
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
	assert.Equal(t, "Room not found", appErr.Message())
}

func TestCreateReservation_conflict(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomNumber: "101"}
	existing := models.Reservation{
		ID:           uuid.New(),
		RoomID:       room.ID,
		CheckInDate:  types.NewDate(2026, time.March, 12),
		CheckOutDate: types.NewDate(2026, time.March, 14),
	}
	repo := &stubReservationsRepo{room: room, conflicts: []models.Reservation{existing}}
	svc, _ := newTestService(t, repo)

	_, err := svc.CreateReservation(context.Background(), validInput(room.ID))
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
	assert.Equal(t, "Room is not available for the selected dates", appErr.Message())

	details, ok := appErr.Details().(map[string]any)
	require.True(t, ok)
	views, ok := details["conflictingReservations"].([]ConflictView)
	require.True(t, ok)
	require.Len(t, views, 1)
	assert.Equal(t, existing.ID, views[0].ID)
	assert.Empty(t, repo.created, "conflicting booking must not be stored")
}

func TestCreateReservation_storageFailureIsInternal(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomNumber: "101"}
	repo := &stubReservationsRepo{room: room, createReservationErr: gorm.ErrInvalidDB}
	svc, _ := newTestService(t, repo)

	_, err := svc.CreateReservation(context.Background(), validInput(room.ID))
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeInternal, appErr.Code())
}

func TestListByWindow_aggregatesPayments(t *testing.T) {
	roomType := &models.RoomType{ID: uuid.New(), Name: "Deluxe"}
	room := &models.Room{ID: uuid.New(), RoomNumber: "201", RoomType: roomType}
	row := models.Reservation{
		ID:               uuid.New(),
		RoomID:           room.ID,
		Room:             room,
		CheckInDate:      types.NewDate(2026, time.March, 10),
		CheckOutDate:     types.NewDate(2026, time.March, 15),
		TotalAmountCents: money.Amount(50000),
		Payments: []models.Payment{
			{AmountCents: money.Amount(20000)},
			{AmountCents: money.Amount(10000)},
		},
	}
	repo := &stubReservationsRepo{listRows: []models.Reservation{row}}
	svc, _ := newTestService(t, repo)

	items, err := svc.ListByWindow(context.Background(), types.NewDate(2026, time.March, 1), types.NewDate(2026, time.March, 31))
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, money.Amount(30000), item.TotalPaid)
	assert.Equal(t, money.Amount(20000), item.Outstanding)
	assert.Equal(t, "201", item.Room.RoomNumber)
	assert.Equal(t, "Deluxe", item.Room.RoomType)
}

func TestListByWindow_validation(t *testing.T) {
	repo := &stubReservationsRepo{}
	svc, _ := newTestService(t, repo)

	_, err := svc.ListByWindow(context.Background(), types.Date{}, types.NewDate(2026, time.March, 31))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.ListByWindow(context.Background(), types.NewDate(2026, time.March, 31), types.NewDate(2026, time.March, 1))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func settledReservation(total, paid money.Amount) *models.Reservation {
	reservation := &models.Reservation{
		ID:               uuid.New(),
		RoomID:           uuid.New(),
		CheckInDate:      types.NewDate(2026, time.March, 10),
		CheckOutDate:     types.NewDate(2026, time.March, 15),
		TotalAmountCents: total,
	}
	if paid > 0 {
		reservation.Payments = []models.Payment{{AmountCents: paid}}
	}
	return reservation
}

func TestAddPayment_success(t *testing.T) {
	reservation := settledReservation(money.Amount(50000), money.Amount(20000))
	repo := &stubReservationsRepo{reservation: reservation}
	svc, runner := newTestService(t, repo)

	result, err := svc.AddPayment(context.Background(), AddPaymentInput{
		ReservationID: reservation.ID,
		Amount:        money.Amount(10000),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, runner.calls)
	require.Len(t, repo.payments, 1)
	assert.Equal(t, money.Amount(50000), result.Summary.TotalAmount)
	assert.Equal(t, money.Amount(30000), result.Summary.TotalPaid)
	assert.Equal(t, money.Amount(20000), result.Summary.Outstanding)
	assert.False(t, result.Summary.IsFullyPaid)

	// the balance recomputation must hold the row lock
	require.Len(t, repo.lockRequests, 1)
	assert.True(t, repo.lockRequests[0])
}

func TestAddPayment_settlesExactly(t *testing.T) {
	reservation := settledReservation(money.Amount(50000), money.Amount(20000))
	repo := &stubReservationsRepo{reservation: reservation}
	svc, _ := newTestService(t, repo)

	result, err := svc.AddPayment(context.Background(), AddPaymentInput{
		ReservationID: reservation.ID,
		Amount:        money.Amount(30000),
	})
	require.NoError(t, err)
	assert.Equal(t, money.Amount(0), result.Summary.Outstanding)
	assert.True(t, result.Summary.IsFullyPaid)
}

func TestAddPayment_overpayRejected(t *testing.T) {
	reservation := settledReservation(money.Amount(50000), money.Amount(50000))
	repo := &stubReservationsRepo{reservation: reservation}
	svc, _ := newTestService(t, repo)

	_, err := svc.AddPayment(context.Background(), AddPaymentInput{
		ReservationID: reservation.ID,
		Amount:        money.Amount(1),
	})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	assert.Equal(t, "Payment amount (0.01) exceeds outstanding balance (0.00)", appErr.Message())

	details, ok := appErr.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, money.Amount(0), details["outstandingBalance"])
	assert.Empty(t, repo.payments)
}

func TestAddPayment_validation(t *testing.T) {
	repo := &stubReservationsRepo{}
	svc, runner := newTestService(t, repo)

	for _, amount := range []money.Amount{0, -500} {
		_, err := svc.AddPayment(context.Background(), AddPaymentInput{
			ReservationID: uuid.New(),
			Amount:        amount,
		})
		require.Error(t, err)
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
		assert.Equal(t, "Amount is required and must be greater than 0", appErr.Message())
	}
	assert.Zero(t, runner.calls)
}

func TestAddPayment_reservationNotFound(t *testing.T) {
	repo := &stubReservationsRepo{}
	svc, _ := newTestService(t, repo)

	_, err := svc.AddPayment(context.Background(), AddPaymentInput{
		ReservationID: uuid.New(),
		Amount:        money.Amount(1000),
	})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
	assert.Equal(t, "Reservation not found", appErr.Message())
}

func TestAddPayment_storageFailureIsInternal(t *testing.T) {
	repo := &stubReservationsRepo{findReservationErr: gorm.ErrInvalidDB}
	svc, _ := newTestService(t, repo)

	_, err := svc.AddPayment(context.Background(), AddPaymentInput{
		ReservationID: uuid.New(),
		Amount:        money.Amount(1000),
	})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeInternal, appErr.Code())
}

func TestCheckAvailability(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomNumber: "101"}
	existing := models.Reservation{
		ID:           uuid.New(),
		RoomID:       room.ID,
		CheckInDate:  types.NewDate(2026, time.March, 12),
		CheckOutDate: types.NewDate(2026, time.March, 14),
	}

	t.Run("conflicting", func(t *testing.T) {
		repo := &stubReservationsRepo{room: room, conflicts: []models.Reservation{existing}}
		svc, _ := newTestService(t, repo)

		view, err := svc.CheckAvailability(context.Background(), room.ID, types.NewDate(2026, time.March, 10), types.NewDate(2026, time.March, 15))
		require.NoError(t, err)
		assert.False(t, view.Available)
		require.Len(t, view.ConflictingReservations, 1)
		assert.Equal(t, existing.ID, view.ConflictingReservations[0].ID)

		// a read-only availability check must not lock rows
		require.Len(t, repo.lockRequests, 1)
		assert.False(t, repo.lockRequests[0])
		require.Len(t, repo.roomLockRequests, 1)
		assert.False(t, repo.roomLockRequests[0])
	})

	t.Run("free", func(t *testing.T) {
		repo := &stubReservationsRepo{room: room}
		svc, _ := newTestService(t, repo)

		view, err := svc.CheckAvailability(context.Background(), room.ID, types.NewDate(2026, time.March, 10), types.NewDate(2026, time.March, 15))
		require.NoError(t, err)
		assert.True(t, view.Available)
		assert.Empty(t, view.ConflictingReservations)
	})

	t.Run("unknown room", func(t *testing.T) {
		repo := &stubReservationsRepo{}
		svc, _ := newTestService(t, repo)

		_, err := svc.CheckAvailability(context.Background(), uuid.New(), types.NewDate(2026, time.March, 10), types.NewDate(2026, time.March, 15))
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	})
}
