package handler

import (
	"go-gin-seat-reservation/internal/model"
	"go-gin-seat-reservation/internal/service"
	apperrors "go-gin-seat-reservation/pkg/app_errors"
	"go-gin-seat-reservation/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ZoneConfigHandler struct {
	service service.ZoneConfigService
}

func NewZoneConfigHandler(service service.ZoneConfigService) *ZoneConfigHandler {
	return &ZoneConfigHandler{service: service}
}

func (h *ZoneConfigHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events/:uuid/zone-config", h.Get)
		router.POST("events/:uuid/zone-config", h.Create)
		router.PUT("events/:uuid/zone-config", h.Update)
		router.GET("events/:uuid/catalog", h.Catalog)
		router.POST("events/:uuid/open-sale", h.OpenForSale)
	}
}

// ZoneDraftRequest 主辦方填寫的單一分區；數字欄位保留字串讓驗證器處理
type ZoneDraftRequest struct {
	Name         string `json:"name"`
	Price        string `json:"price"`
	Rows         string `json:"rows"`
	Cols         string `json:"cols"`
	TicketTypeID *int   `json:"ticket_type_id"`
}

// SaveZoneConfigRequest 票務設定草稿請求
type SaveZoneConfigRequest struct {
	Zones       []ZoneDraftRequest `json:"zones"`
	MinPerOrder string             `json:"min_per_order"`
	MaxPerOrder string             `json:"max_per_order"`
	StartDate   string             `json:"start_date"`
	StartTime   string             `json:"start_time"`
	EndDate     string             `json:"end_date"`
	EndTime     string             `json:"end_time"`
	Active      bool               `json:"active"`
}

func (req *SaveZoneConfigRequest) toDraft() model.SetupDraft {
	zones := make([]model.ZoneDraft, 0, len(req.Zones))
	for _, z := range req.Zones {
		zones = append(zones, model.ZoneDraft{
			Name:         z.Name,
			Price:        z.Price,
			Rows:         z.Rows,
			Cols:         z.Cols,
			TicketTypeID: z.TicketTypeID,
		})
	}
	return model.SetupDraft{
		Zones:       zones,
		MinPerOrder: req.MinPerOrder,
		MaxPerOrder: req.MaxPerOrder,
		Window: model.SalesWindowDraft{
			StartDate: req.StartDate,
			StartTime: req.StartTime,
			EndDate:   req.EndDate,
			EndTime:   req.EndTime,
		},
		Active: req.Active,
	}
}

// CatalogResponse 買票端目錄響應
type CatalogResponse struct {
	GlobalRows   int                   `json:"global_rows"`
	GlobalCols   int                   `json:"global_cols"`
	Zones        []CatalogZoneResponse `json:"zones"`
	MinPerOrder  int                   `json:"min_per_order"`
	MaxPerOrder  int                   `json:"max_per_order"`
	Active       bool                  `json:"active"`
	PriceSummary string                `json:"price_summary"`
}

type CatalogZoneResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Rows         int               `json:"rows"`
	Cols         int               `json:"cols"`
	Price        *float64          `json:"price,omitempty"`
	TicketTypeID *int              `json:"ticket_type_id,omitempty"`
	Occupied     []model.SeatCoord `json:"occupied_seats"`
}

func (h *ZoneConfigHandler) Get(c *gin.Context) {
	eventID, ok := h.parseEventID(c)
	if !ok {
		return
	}
	config, err := h.service.Get(c, eventID)
	if err != nil {
		h.handleError(c, err, "Get")
		return
	}
	c.JSON(http.StatusOK, config)
}

func (h *ZoneConfigHandler) Create(c *gin.Context) {
	h.save(c, false, "Create")
}

func (h *ZoneConfigHandler) Update(c *gin.Context) {
	h.save(c, true, "Update")
}

func (h *ZoneConfigHandler) save(c *gin.Context, replace bool, operation string) {
	eventID, ok := h.parseEventID(c)
	if !ok {
		return
	}
	var req SaveZoneConfigRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	config, violations, err := h.service.Save(c, eventID, req.toDraft(), replace)
	if err != nil {
		h.handleError(c, err, operation)
		return
	}
	if len(violations) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"violations": violations})
		return
	}

	status := http.StatusCreated
	if replace {
		status = http.StatusOK
	}
	c.JSON(status, config)
}

func (h *ZoneConfigHandler) Catalog(c *gin.Context) {
	eventID, ok := h.parseEventID(c)
	if !ok {
		return
	}
	catalog, err := h.service.Catalog(c, eventID)
	if err != nil {
		h.handleError(c, err, "Catalog")
		return
	}

	zones := make([]CatalogZoneResponse, 0, len(catalog.Zones))
	for _, z := range catalog.Zones {
		zones = append(zones, CatalogZoneResponse{
			ID:           z.ID,
			Name:         z.Name,
			Rows:         z.Grid.Rows,
			Cols:         z.Grid.Cols,
			Price:        z.Price,
			TicketTypeID: z.TicketTypeID,
			Occupied:     z.Grid.OccupiedSeats(),
		})
	}
	c.JSON(http.StatusOK, CatalogResponse{
		GlobalRows:   catalog.GlobalRows,
		GlobalCols:   catalog.GlobalCols,
		Zones:        zones,
		MinPerOrder:  catalog.MinPerOrder,
		MaxPerOrder:  catalog.MaxPerOrder,
		Active:       catalog.Active,
		PriceSummary: catalog.PriceSummary(),
	})
}

func (h *ZoneConfigHandler) OpenForSale(c *gin.Context) {
	eventID, ok := h.parseEventID(c)
	if !ok {
		return
	}
	if err := h.service.OpenForSale(c, eventID); err != nil {
		h.handleError(c, err, "OpenForSale")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ZoneConfigHandler) parseEventID(c *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return uuid.Nil, false
	}
	return eventID, true
}

func (h *ZoneConfigHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrEventNotFound:
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case err == apperrors.ErrZoneConfigNotFound:
		// 尚未建立設定是正常狀態，編輯端以 404 判斷要 POST 還是 PUT
		log.Info("Zone config not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Zone config not found"})
	case err == apperrors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
