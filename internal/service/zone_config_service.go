package service

import (
	"context"

	"go-gin-seat-reservation/internal/cache"
	"go-gin-seat-reservation/internal/model"
	"go-gin-seat-reservation/internal/repository"

	"github.com/google/uuid"
)

type ZoneConfigService interface {
	// Get 主辦方讀回設定；尚未建立設定時回傳 ErrZoneConfigNotFound（編輯流程視為正常情況）
	Get(ctx context.Context, eventID uuid.UUID) (*model.ZoneConfig, error)
	// Save 驗證草稿並持久化；違規時回傳違規清單而不是 error。
	// replace=false 建立新設定，true 覆蓋既有設定（由呼叫端依 POST/PUT 決定）
	Save(ctx context.Context, eventID uuid.UUID, draft model.SetupDraft, replace bool) (*model.ZoneConfig, []model.Violation, error)
	// Catalog 買票時重建唯讀目錄，合併資料庫中的即時已售座位
	Catalog(ctx context.Context, eventID uuid.UUID) (*model.ZoneCatalog, error)
	// OpenForSale 活動開賣：預熱所有分區的已售座位到 Redis
	OpenForSale(ctx context.Context, eventID uuid.UUID) error
}

type ZoneConfigServiceImpl struct {
	eventRepo        repository.EventRepository
	repo             repository.ZoneConfigRepository
	occupancyManager cache.RedisSeatOccupancyManager
}

func NewZoneConfigService(
	eventRepo repository.EventRepository,
	repo repository.ZoneConfigRepository,
	occupancyManager cache.RedisSeatOccupancyManager,
) ZoneConfigService {
	return &ZoneConfigServiceImpl{
		eventRepo:        eventRepo,
		repo:             repo,
		occupancyManager: occupancyManager,
	}
}

func (s *ZoneConfigServiceImpl) Get(ctx context.Context, eventID uuid.UUID) (*model.ZoneConfig, error) {
	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByEventID(ctx, event.ID)
}

func (s *ZoneConfigServiceImpl) Save(ctx context.Context, eventID uuid.UUID, draft model.SetupDraft, replace bool) (*model.ZoneConfig, []model.Violation, error) {
	payload, violations := model.ValidateSetup(draft)
	if len(violations) > 0 {
		return nil, violations, nil
	}

	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	var config *model.ZoneConfig
	if replace {
		config, err = s.repo.Replace(ctx, event.ID, payload)
	} else {
		config, err = s.repo.Create(ctx, event.ID, payload)
	}
	if err != nil {
		return nil, nil, err
	}

	return config, nil, nil
}

func (s *ZoneConfigServiceImpl) Catalog(ctx context.Context, eventID uuid.UUID) (*model.ZoneCatalog, error) {
	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	config, err := s.repo.FindByEventID(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	occupied, err := s.repo.OccupiedSeats(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	return config.ToCatalog(occupied), nil
}

func (s *ZoneConfigServiceImpl) OpenForSale(ctx context.Context, eventID uuid.UUID) error {
	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return err
	}

	config, err := s.repo.FindByEventID(ctx, event.ID)
	if err != nil {
		return err
	}

	occupied, err := s.repo.OccupiedSeats(ctx, event.ID)
	if err != nil {
		return err
	}

	for _, zone := range config.Zones {
		if err := s.occupancyManager.WarmUpOccupancy(ctx, event.EventID.String(), zone.ZoneID, occupied[zone.ZoneID]); err != nil {
			return err
		}
	}
	return nil
}
