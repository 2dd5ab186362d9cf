package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-gin-seat-reservation/internal/model"
	"go-gin-seat-reservation/internal/session"
	apperrors "go-gin-seat-reservation/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

var saleNow = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

func saleZoneConfig() *model.ZoneConfig {
	return &model.ZoneConfig{
		ID:          1,
		EventID:     1,
		GlobalRows:  5,
		GlobalCols:  5,
		MinPerOrder: 1,
		MaxPerOrder: 4,
		SalesStart:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		SalesEnd:    time.Date(2026, 9, 30, 23, 59, 0, 0, time.UTC),
		Active:      true,
		Zones: []model.ZoneRecord{
			{Position: 0, ZoneID: "vip", Name: "VIP", Code: "VIP", Price: floatPtr(5000), Rows: 5, Cols: 5, TicketTypeID: intPtr(1)},
			{Position: 1, ZoneID: "ga", Name: "GA", Code: "GA", Price: floatPtr(1500), Rows: 5, Cols: 5, TicketTypeID: intPtr(2)},
		},
	}
}

type reservationServiceMocks struct {
	eventRepo  *MockEventRepository
	configRepo *MockZoneConfigRepository
	resRepo    *MockReservationRepository
	occupancy  *MockSeatOccupancyManager
	queue      *MockReservationQueue
	sessions   *MockSessionStore
}

func newReservationServiceWithMocks() (*ReservationServiceImpl, *reservationServiceMocks) {
	m := &reservationServiceMocks{
		eventRepo:  &MockEventRepository{},
		configRepo: &MockZoneConfigRepository{},
		resRepo:    &MockReservationRepository{},
		occupancy:  &MockSeatOccupancyManager{},
		queue:      &MockReservationQueue{},
		sessions:   &MockSessionStore{},
	}
	svc := &ReservationServiceImpl{
		repository:       m.resRepo,
		eventRepository:  m.eventRepo,
		configRepository: m.configRepo,
		occupancyManager: m.occupancy,
		reservationQueue: m.queue,
		sessions:         m.sessions,
		now:              func() time.Time { return saleNow },
	}
	return svc, m
}

func TestReservationService_PrepareReservation(t *testing.T) {
	ctx := context.Background()
	eventUUID := uuid.New()
	event := &model.Event{ID: 1, EventID: eventUUID, Name: "Arena Show"}

	stubCatalogLookups := func(m *reservationServiceMocks, config *model.ZoneConfig, occupied map[string][]model.SeatCoord) {
		m.eventRepo.On("FindByEventID", ctx, eventUUID).Return(event, nil).Once()
		m.configRepo.On("FindByEventID", ctx, 1).Return(config, nil).Once()
		m.configRepo.On("OccupiedSeats", ctx, 1).Return(occupied, nil).Once()
	}

	t.Run("Success", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		stubCatalogLookups(m, saleZoneConfig(), map[string][]model.SeatCoord{})

		picks := []model.Pick{{ZoneID: "vip", Row: 1, Col: 1}, {ZoneID: "vip", Row: 1, Col: 2}}
		m.occupancy.On("ClaimSeats", ctx, eventUUID.String(), picks).Return(nil).Once()
		m.queue.On("PublishReservation", ctx, mock.Anything).Return(nil).Once()

		req := model.CreateReservationRequest{
			EventID: eventUUID,
			Picks:   []model.PickRequest{{ZoneID: "vip", Row: 1, Col: 1}, {ZoneID: "vip", Row: 1, Col: 2}},
		}
		reservation, err := svc.PrepareReservation(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, 1, reservation.EventID)
		assert.Equal(t, 1, reservation.TicketTypeID)
		assert.Equal(t, 2, reservation.Quantity)
		assert.Equal(t, 10000.0, reservation.TotalAmount)
		assert.Equal(t, model.ReservationStatusPending, reservation.Status)
		assert.NotEqual(t, uuid.Nil, reservation.ReservationID)

		m.occupancy.AssertExpectations(t)
		m.queue.AssertExpectations(t)
	})

	t.Run("Failed - ErrSalesNotOpen(Inactive)", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		config := saleZoneConfig()
		config.Active = false
		stubCatalogLookups(m, config, map[string][]model.SeatCoord{})

		req := model.CreateReservationRequest{
			EventID: eventUUID,
			Picks:   []model.PickRequest{{ZoneID: "vip", Row: 1, Col: 1}},
		}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrSalesNotOpen)
		m.occupancy.AssertNotCalled(t, "ClaimSeats")
	})

	t.Run("Failed - ErrSalesNotOpen(WindowClosed)", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		config := saleZoneConfig()
		config.SalesEnd = saleNow.Add(-time.Hour)
		stubCatalogLookups(m, config, map[string][]model.SeatCoord{})

		req := model.CreateReservationRequest{
			EventID: eventUUID,
			Picks:   []model.PickRequest{{ZoneID: "vip", Row: 1, Col: 1}},
		}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrSalesNotOpen)
	})

	t.Run("Failed - ErrZoneNotFound", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		stubCatalogLookups(m, saleZoneConfig(), map[string][]model.SeatCoord{})

		req := model.CreateReservationRequest{
			EventID: eventUUID,
			Picks:   []model.PickRequest{{ZoneID: "nope", Row: 1, Col: 1}},
		}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrZoneNotFound)
	})

	t.Run("Failed - ErrInvalidInput(OutOfRange)", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		stubCatalogLookups(m, saleZoneConfig(), map[string][]model.SeatCoord{})

		req := model.CreateReservationRequest{
			EventID: eventUUID,
			Picks:   []model.PickRequest{{ZoneID: "vip", Row: 99, Col: 0}},
		}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - ErrSeatUnavailable(AlreadySold)", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		stubCatalogLookups(m, saleZoneConfig(), map[string][]model.SeatCoord{
			"vip": {{Row: 1, Col: 1}},
		})

		req := model.CreateReservationRequest{
			EventID: eventUUID,
			Picks:   []model.PickRequest{{ZoneID: "vip", Row: 1, Col: 1}},
		}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrSeatUnavailable)
		m.occupancy.AssertNotCalled(t, "ClaimSeats")
	})

	t.Run("Failed - ErrCrossTypeSelection", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		stubCatalogLookups(m, saleZoneConfig(), map[string][]model.SeatCoord{})

		req := model.CreateReservationRequest{
			EventID: eventUUID,
			Picks:   []model.PickRequest{{ZoneID: "vip", Row: 1, Col: 1}, {ZoneID: "ga", Row: 0, Col: 0}},
		}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrCrossTypeSelection)
	})

	t.Run("Failed - ErrEmptySelection", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		stubCatalogLookups(m, saleZoneConfig(), map[string][]model.SeatCoord{})

		req := model.CreateReservationRequest{EventID: eventUUID}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrEmptySelection)
		m.occupancy.AssertNotCalled(t, "ClaimSeats")
	})

	t.Run("Failed - DuplicatePicksCancelOut", func(t *testing.T) {
		// 同一座位重複出現等於點選又取消，重放後選取為空
		svc, m := newReservationServiceWithMocks()
		stubCatalogLookups(m, saleZoneConfig(), map[string][]model.SeatCoord{})

		req := model.CreateReservationRequest{
			EventID: eventUUID,
			Picks:   []model.PickRequest{{ZoneID: "vip", Row: 1, Col: 1}, {ZoneID: "vip", Row: 1, Col: 1}},
		}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrEmptySelection)
		m.occupancy.AssertNotCalled(t, "ClaimSeats")
	})

	t.Run("Failed - ErrQuantityOutOfRange", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		config := saleZoneConfig()
		config.MinPerOrder = 2
		stubCatalogLookups(m, config, map[string][]model.SeatCoord{})

		req := model.CreateReservationRequest{
			EventID: eventUUID,
			Picks:   []model.PickRequest{{ZoneID: "vip", Row: 1, Col: 1}},
		}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrQuantityOutOfRange)
		m.occupancy.AssertNotCalled(t, "ClaimSeats")
	})

	t.Run("Failed - ErrSeatAlreadyTaken(ClaimConflict)", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		stubCatalogLookups(m, saleZoneConfig(), map[string][]model.SeatCoord{})

		m.occupancy.On("ClaimSeats", ctx, eventUUID.String(), mock.Anything).
			Return(apperrors.ErrSeatAlreadyTaken).Once()

		req := model.CreateReservationRequest{
			EventID: eventUUID,
			Picks:   []model.PickRequest{{ZoneID: "vip", Row: 1, Col: 1}},
		}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrSeatAlreadyTaken)
		m.queue.AssertNotCalled(t, "PublishReservation")
	})

	t.Run("Failed - PublishRollsBackClaim", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		stubCatalogLookups(m, saleZoneConfig(), map[string][]model.SeatCoord{})

		picks := []model.Pick{{ZoneID: "vip", Row: 1, Col: 1}}
		m.occupancy.On("ClaimSeats", ctx, eventUUID.String(), picks).Return(nil).Once()
		m.queue.On("PublishReservation", ctx, mock.Anything).Return(errors.New("stream down")).Once()
		m.occupancy.On("ReleaseSeats", mock.Anything, eventUUID.String(), picks).Return(nil).Once()

		req := model.CreateReservationRequest{
			EventID: eventUUID,
			Picks:   []model.PickRequest{{ZoneID: "vip", Row: 1, Col: 1}},
		}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrInternalServerError)
		m.occupancy.AssertExpectations(t)
		m.queue.AssertExpectations(t)
	})

	t.Run("SessionRecordsLastReservation", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		stubCatalogLookups(m, saleZoneConfig(), map[string][]model.SeatCoord{})

		m.occupancy.On("ClaimSeats", ctx, eventUUID.String(), mock.Anything).Return(nil).Once()
		m.queue.On("PublishReservation", ctx, mock.Anything).Return(nil).Once()
		m.sessions.On("SetLastReservation", ctx, "flow-1", mock.Anything).Return(nil).Once()

		req := model.CreateReservationRequest{
			EventID:   eventUUID,
			Picks:     []model.PickRequest{{ZoneID: "vip", Row: 1, Col: 1}},
			SessionID: "flow-1",
		}
		reservation, err := svc.PrepareReservation(ctx, req)

		require.NoError(t, err)
		m.sessions.AssertCalled(t, "SetLastReservation", ctx, "flow-1", reservation.ReservationID.String())
	})

	t.Run("SessionWriteFailureDoesNotFailReservation", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		stubCatalogLookups(m, saleZoneConfig(), map[string][]model.SeatCoord{})

		m.occupancy.On("ClaimSeats", ctx, eventUUID.String(), mock.Anything).Return(nil).Once()
		m.queue.On("PublishReservation", ctx, mock.Anything).Return(nil).Once()
		m.sessions.On("SetLastReservation", ctx, "flow-1", mock.Anything).Return(errors.New("redis down")).Once()

		req := model.CreateReservationRequest{
			EventID:   eventUUID,
			Picks:     []model.PickRequest{{ZoneID: "vip", Row: 1, Col: 1}},
			SessionID: "flow-1",
		}
		_, err := svc.PrepareReservation(ctx, req)

		require.NoError(t, err)
	})

	t.Run("Failed - ErrEventNotFound", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		m.eventRepo.On("FindByEventID", ctx, eventUUID).Return(nil, apperrors.ErrEventNotFound).Once()

		req := model.CreateReservationRequest{EventID: eventUUID}
		_, err := svc.PrepareReservation(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestReservationService_Delegations(t *testing.T) {
	ctx := context.Background()

	t.Run("ReservationList", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		expected := []*model.Reservation{{ID: 1}, {ID: 2}}
		m.resRepo.On("List", ctx).Return(expected, nil).Once()

		reservations, err := svc.ReservationList(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, reservations)
	})

	t.Run("GetReservationByID", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		m.resRepo.On("FindByID", ctx, 7).Return(&model.Reservation{ID: 7}, nil).Once()

		reservation, err := svc.GetReservationByID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 7, reservation.ID)
	})

	t.Run("GetReservationByID - NotFound", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		m.resRepo.On("FindByID", ctx, 7).Return(nil, apperrors.ErrReservationNotFound).Once()

		_, err := svc.GetReservationByID(ctx, 7)
		assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
	})

	t.Run("DeleteReservation", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		m.resRepo.On("Delete", ctx, 7).Return(nil).Once()

		assert.NoError(t, svc.DeleteReservation(ctx, 7))
	})
}

func TestReservationService_FlowSessions(t *testing.T) {
	ctx := context.Background()

	t.Run("BeginFlow", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		m.sessions.On("Begin", ctx).Return(&session.FlowSession{ID: "flow-1"}, nil).Once()

		flow, err := svc.BeginFlow(ctx)
		require.NoError(t, err)
		assert.Equal(t, "flow-1", flow.ID)
	})

	t.Run("LastReservation", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		m.sessions.On("LastReservation", ctx, "flow-1").Return("res-uuid", nil).Once()

		id, err := svc.LastReservation(ctx, "flow-1")
		require.NoError(t, err)
		assert.Equal(t, "res-uuid", id)
	})

	t.Run("LastReservation - NotFound", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		m.sessions.On("LastReservation", ctx, "flow-1").Return("", apperrors.ErrReservationNotFound).Once()

		_, err := svc.LastReservation(ctx, "flow-1")
		assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
	})

	t.Run("EndFlow", func(t *testing.T) {
		svc, m := newReservationServiceWithMocks()
		m.sessions.On("End", ctx, "flow-1").Return(nil).Once()

		assert.NoError(t, svc.EndFlow(ctx, "flow-1"))
	})
}
