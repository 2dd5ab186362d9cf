package service

import (
	"context"
	"time"

	"go-gin-seat-reservation/internal/cache"
	"go-gin-seat-reservation/internal/model"
	"go-gin-seat-reservation/internal/queue"
	"go-gin-seat-reservation/internal/repository"
	"go-gin-seat-reservation/internal/session"
	apperrors "go-gin-seat-reservation/pkg/app_errors"
	"go-gin-seat-reservation/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ReservationService interface {
	// 建立訂位(Redis座位佔位 + Queue)
	PrepareReservation(ctx context.Context, req model.CreateReservationRequest) (*model.Reservation, error)
	// 建立訂位(Queue持久化)
	DispatchReservation(ctx context.Context, reservation *model.Reservation) error
	ReservationList(ctx context.Context) ([]*model.Reservation, error)
	GetReservationByID(ctx context.Context, id int) (*model.Reservation, error)
	ConfirmReservation(ctx context.Context, id int) error
	CancelReservation(ctx context.Context, id int) error
	DeleteReservation(ctx context.Context, id int) error

	// 購票流程 session
	BeginFlow(ctx context.Context) (*session.FlowSession, error)
	EndFlow(ctx context.Context, sessionID string) error
	LastReservation(ctx context.Context, sessionID string) (string, error)
}

type ReservationServiceImpl struct {
	pool             *pgxpool.Pool
	repository       repository.ReservationRepository
	eventRepository  repository.EventRepository
	configRepository repository.ZoneConfigRepository
	occupancyManager cache.RedisSeatOccupancyManager
	reservationQueue queue.ReservationQueue
	sessions         session.Store
	now              func() time.Time
}

func NewReservationService(
	pool *pgxpool.Pool,
	reservationRepository repository.ReservationRepository,
	eventRepository repository.EventRepository,
	configRepository repository.ZoneConfigRepository,
	occupancyManager cache.RedisSeatOccupancyManager,
	reservationQueue queue.ReservationQueue,
	sessions session.Store,
) ReservationService {
	return &ReservationServiceImpl{
		pool:             pool,
		repository:       reservationRepository,
		eventRepository:  eventRepository,
		configRepository: configRepository,
		occupancyManager: occupancyManager,
		reservationQueue: reservationQueue,
		sessions:         sessions,
		now:              time.Now,
	}
}

// PrepareReservation 接手買家送出的 picks：
//  1. 重建目錄（設定 + 即時已售座位），在伺服器端重放 SelectionEngine，
//     已售座位與跨票種的約束在這裡強制執行，繞過 UI 的呼叫也擋得住
//  2. 組出訂位 payload（空選取、無票種分別回報）
//  3. Redis 原子佔位，任何座位被搶走整批失敗
//  4. 發送 MQ；失敗時回滾佔位（絕對不能讓座位被佔死，所以不用 go routine）
func (s *ReservationServiceImpl) PrepareReservation(ctx context.Context, req model.CreateReservationRequest) (*model.Reservation, error) {
	event, err := s.eventRepository.FindByEventID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	config, err := s.configRepository.FindByEventID(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	occupied, err := s.configRepository.OccupiedSeats(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	catalog := config.ToCatalog(occupied)

	if !catalog.Active || !catalog.SalesWindow.Contains(s.now()) {
		return nil, apperrors.ErrSalesNotOpen
	}

	engine := model.NewSelectionEngine(catalog)
	for _, p := range req.Picks {
		zone, ok := catalog.ZoneOf(p.ZoneID)
		if !ok {
			return nil, apperrors.ErrZoneNotFound
		}
		if !zone.Grid.Contains(p.Row, p.Col) {
			return nil, apperrors.ErrInvalidInput
		}
		if err := engine.Toggle(p.ZoneID, p.Row, p.Col); err != nil {
			return nil, err
		}
	}
	// 重放後以引擎狀態為準：重複的 pick 會互相抵銷
	picks := engine.Picks()

	reservation, err := model.BuildReservation(engine, req.Notes)
	if err != nil {
		return nil, err
	}

	if reservation.Quantity < catalog.MinPerOrder || reservation.Quantity > catalog.MaxPerOrder {
		return nil, apperrors.ErrQuantityOutOfRange
	}

	reservation.EventID = event.ID
	reservation.ReservationID = uuid.New()

	// Redis 原子佔位
	if err := s.occupancyManager.ClaimSeats(ctx, event.EventID.String(), picks); err != nil {
		return nil, err
	}

	// 嘗試發送 MQ：ctx跟隨請求的生命週期，用戶不等了就取消
	if err := s.reservationQueue.PublishReservation(ctx, reservation); err != nil {
		logger.WithComponent("service").Error("failed to publish reservation", zap.Error(err))
		// MQ紀錄失敗，回滾佔位：用 context.Background() 傳遞，確保一定會執行
		if rbErr := s.occupancyManager.ReleaseSeats(context.Background(), event.EventID.String(), picks); rbErr != nil {
			logger.WithComponent("service").Error("failed to release seats", zap.Error(rbErr))
		}
		return nil, apperrors.ErrInternalServerError
	}

	if req.SessionID != "" {
		if err := s.sessions.SetLastReservation(ctx, req.SessionID, reservation.ReservationID.String()); err != nil {
			logger.WithComponent("service").Warn("failed to record last reservation", zap.Error(err))
		}
	}

	return reservation, nil
}

func (s *ReservationServiceImpl) DispatchReservation(ctx context.Context, reservation *model.Reservation) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// 寫入訂位及座位明細到資料庫
	if _, err := s.repository.Create(ctx, tx, reservation); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *ReservationServiceImpl) ReservationList(ctx context.Context) ([]*model.Reservation, error) {
	return s.repository.List(ctx)
}

func (s *ReservationServiceImpl) GetReservationByID(ctx context.Context, id int) (*model.Reservation, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *ReservationServiceImpl) ConfirmReservation(ctx context.Context, id int) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := s.repository.UpdateStatusWithLock(ctx, tx, id, model.ReservationStatusConfirmed); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *ReservationServiceImpl) CancelReservation(ctx context.Context, id int) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	reservation, err := s.repository.UpdateStatusWithLock(ctx, tx, id, model.ReservationStatusCancelled)
	if err != nil {
		return err
	}

	seats, err := s.repository.SeatsByReservationID(ctx, id)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	// 取消後釋放 Redis 佔位；快取最終會在下次預熱對齊，失敗只記 log
	event, err := s.eventRepository.FindByID(ctx, reservation.EventID)
	if err != nil {
		logger.WithComponent("service").Warn("failed to resolve event for seat release", zap.Error(err))
		return nil
	}

	picks := make([]model.Pick, 0, len(seats))
	for _, seat := range seats {
		picks = append(picks, model.Pick{ZoneID: seat.ZoneID, Row: seat.Row, Col: seat.Col})
	}
	if err := s.occupancyManager.ReleaseSeats(ctx, event.EventID.String(), picks); err != nil {
		logger.WithComponent("service").Warn("failed to release cancelled seats", zap.Error(err))
	}

	return nil
}

func (s *ReservationServiceImpl) DeleteReservation(ctx context.Context, id int) error {
	return s.repository.Delete(ctx, id)
}

func (s *ReservationServiceImpl) BeginFlow(ctx context.Context) (*session.FlowSession, error) {
	return s.sessions.Begin(ctx)
}

func (s *ReservationServiceImpl) EndFlow(ctx context.Context, sessionID string) error {
	return s.sessions.End(ctx, sessionID)
}

func (s *ReservationServiceImpl) LastReservation(ctx context.Context, sessionID string) (string, error) {
	return s.sessions.LastReservation(ctx, sessionID)
}
