package service

import (
	"context"

	"go-gin-seat-reservation/internal/model"
	"go-gin-seat-reservation/internal/queue"
	"go-gin-seat-reservation/internal/repository"
	"go-gin-seat-reservation/internal/session"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// 手寫 testify mock，涵蓋 service 依賴的所有介面

type MockEventRepository struct{ mock.Mock }

func (m *MockEventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context) ([]*model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

type MockOrganizerRepository struct{ mock.Mock }

func (m *MockOrganizerRepository) Create(ctx context.Context, organizer *model.Organizer) (*model.Organizer, error) {
	args := m.Called(ctx, organizer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organizer), args.Error(1)
}

func (m *MockOrganizerRepository) List(ctx context.Context) ([]*model.Organizer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Organizer), args.Error(1)
}

func (m *MockOrganizerRepository) FindByID(ctx context.Context, id int) (*model.Organizer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organizer), args.Error(1)
}

func (m *MockOrganizerRepository) FindByEmail(ctx context.Context, email string) (*model.Organizer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organizer), args.Error(1)
}

func (m *MockOrganizerRepository) Update(ctx context.Context, id int, params repository.UpdateOrganizerParams) (*model.Organizer, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organizer), args.Error(1)
}

func (m *MockOrganizerRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type MockZoneConfigRepository struct{ mock.Mock }

func (m *MockZoneConfigRepository) FindByEventID(ctx context.Context, eventID int) (*model.ZoneConfig, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ZoneConfig), args.Error(1)
}

func (m *MockZoneConfigRepository) Create(ctx context.Context, eventID int, payload *model.NormalizedZoneConfig) (*model.ZoneConfig, error) {
	args := m.Called(ctx, eventID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ZoneConfig), args.Error(1)
}

func (m *MockZoneConfigRepository) Replace(ctx context.Context, eventID int, payload *model.NormalizedZoneConfig) (*model.ZoneConfig, error) {
	args := m.Called(ctx, eventID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ZoneConfig), args.Error(1)
}

func (m *MockZoneConfigRepository) OccupiedSeats(ctx context.Context, eventID int) (map[string][]model.SeatCoord, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]model.SeatCoord), args.Error(1)
}

type MockReservationRepository struct{ mock.Mock }

func (m *MockReservationRepository) List(ctx context.Context) ([]*model.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id int) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByEventID(ctx context.Context, eventID int) ([]*model.Reservation, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) SeatsByReservationID(ctx context.Context, id int) ([]model.ReservationSeat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReservationSeat), args.Error(1)
}

func (m *MockReservationRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationRepository) Create(ctx context.Context, tx pgx.Tx, reservation *model.Reservation) (*model.Reservation, error) {
	args := m.Called(ctx, tx, reservation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.ReservationStatus) (*model.Reservation, error) {
	args := m.Called(ctx, tx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

type MockSeatOccupancyManager struct{ mock.Mock }

func (m *MockSeatOccupancyManager) WarmUpOccupancy(ctx context.Context, eventID string, zoneID string, seats []model.SeatCoord) error {
	return m.Called(ctx, eventID, zoneID, seats).Error(0)
}

func (m *MockSeatOccupancyManager) GetOccupied(ctx context.Context, eventID string, zoneID string) ([]model.SeatCoord, error) {
	args := m.Called(ctx, eventID, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SeatCoord), args.Error(1)
}

func (m *MockSeatOccupancyManager) ClaimSeats(ctx context.Context, eventID string, picks []model.Pick) error {
	return m.Called(ctx, eventID, picks).Error(0)
}

func (m *MockSeatOccupancyManager) ReleaseSeats(ctx context.Context, eventID string, picks []model.Pick) error {
	return m.Called(ctx, eventID, picks).Error(0)
}

type MockReservationQueue struct{ mock.Mock }

func (m *MockReservationQueue) PublishReservation(ctx context.Context, reservation *model.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *MockReservationQueue) SubscribeReservations(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Begin(ctx context.Context) (*session.FlowSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.FlowSession), args.Error(1)
}

func (m *MockSessionStore) SetLastReservation(ctx context.Context, sessionID string, reservationID string) error {
	return m.Called(ctx, sessionID, reservationID).Error(0)
}

func (m *MockSessionStore) LastReservation(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) End(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}
