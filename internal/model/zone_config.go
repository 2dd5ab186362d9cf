package model

import "time"

// ZoneConfig 持久化後的票務設定（主辦時由驗證器產出，買票時讀回重建目錄）
type ZoneConfig struct {
	ID          int       `json:"id" db:"id"`
	EventID     int       `json:"event_id" db:"event_id"`
	GlobalRows  int       `json:"global_rows" db:"global_rows"`
	GlobalCols  int       `json:"global_cols" db:"global_cols"`
	MinPerOrder int       `json:"min_per_order" db:"min_per_order"`
	MaxPerOrder int       `json:"max_per_order" db:"max_per_order"`
	SalesStart  time.Time `json:"sales_start" db:"sales_start"`
	SalesEnd    time.Time `json:"sales_end" db:"sales_end"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Zones []ZoneRecord `json:"zones" db:"-"`
}

// ZoneRecord 設定底下的一個分區，Position 即主辦時的編輯順序
type ZoneRecord struct {
	ID           int      `json:"id" db:"id"`
	ConfigID     int      `json:"config_id" db:"config_id"`
	Position     int      `json:"position" db:"position"`
	ZoneID       string   `json:"zone_id" db:"zone_id"`
	Name         string   `json:"name" db:"name"`
	Code         string   `json:"code" db:"code"`
	Price        *float64 `json:"price,omitempty" db:"price"`
	Rows         int      `json:"rows" db:"rows"`
	Cols         int      `json:"cols" db:"cols"`
	TicketTypeID *int     `json:"ticket_type_id,omitempty" db:"ticket_type_id"`
}

// ToCatalog 以持久化設定加上即時已售座位重建唯讀目錄，供選位引擎使用
func (c *ZoneConfig) ToCatalog(occupied map[string][]SeatCoord) *ZoneCatalog {
	zones := make([]*Zone, 0, len(c.Zones))
	for _, record := range c.Zones {
		grid := NewSeatGrid(record.Rows, record.Cols)
		grid.ReplaceOccupied(occupied[record.ZoneID])
		zones = append(zones, &Zone{
			ID:           record.ZoneID,
			Name:         record.Name,
			Grid:         grid,
			Price:        record.Price,
			TicketTypeID: record.TicketTypeID,
		})
	}

	start, end := c.SalesStart, c.SalesEnd
	catalog := NewZoneCatalog(c.GlobalRows, c.GlobalCols, zones)
	catalog.MinPerOrder = c.MinPerOrder
	catalog.MaxPerOrder = c.MaxPerOrder
	catalog.SalesWindow = SalesWindow{Start: &start, End: &end}
	catalog.Active = c.Active
	return catalog
}
