package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"go-gin-seat-reservation/internal/model"
	"go-gin-seat-reservation/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

const InvalidJSON = "{invalid json"

func createJSONHTTPRequest(method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// 手寫 testify mock，涵蓋 handler 依賴的 service 介面

type MockEventService struct{ mock.Mock }

func (m *MockEventService) List(ctx context.Context) ([]*model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventService) GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) UpdateByEventID(ctx context.Context, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, eventID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

type MockZoneConfigService struct{ mock.Mock }

func (m *MockZoneConfigService) Get(ctx context.Context, eventID uuid.UUID) (*model.ZoneConfig, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ZoneConfig), args.Error(1)
}

func (m *MockZoneConfigService) Save(ctx context.Context, eventID uuid.UUID, draft model.SetupDraft, replace bool) (*model.ZoneConfig, []model.Violation, error) {
	args := m.Called(ctx, eventID, draft, replace)
	var config *model.ZoneConfig
	if args.Get(0) != nil {
		config = args.Get(0).(*model.ZoneConfig)
	}
	var violations []model.Violation
	if args.Get(1) != nil {
		violations = args.Get(1).([]model.Violation)
	}
	return config, violations, args.Error(2)
}

func (m *MockZoneConfigService) Catalog(ctx context.Context, eventID uuid.UUID) (*model.ZoneCatalog, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ZoneCatalog), args.Error(1)
}

func (m *MockZoneConfigService) OpenForSale(ctx context.Context, eventID uuid.UUID) error {
	return m.Called(ctx, eventID).Error(0)
}

type MockReservationService struct{ mock.Mock }

func (m *MockReservationService) PrepareReservation(ctx context.Context, req model.CreateReservationRequest) (*model.Reservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationService) DispatchReservation(ctx context.Context, reservation *model.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *MockReservationService) ReservationList(ctx context.Context) ([]*model.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reservation), args.Error(1)
}

func (m *MockReservationService) GetReservationByID(ctx context.Context, id int) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationService) ConfirmReservation(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationService) CancelReservation(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationService) DeleteReservation(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationService) BeginFlow(ctx context.Context) (*session.FlowSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.FlowSession), args.Error(1)
}

func (m *MockReservationService) EndFlow(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockReservationService) LastReservation(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}
