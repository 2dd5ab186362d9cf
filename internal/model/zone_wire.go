package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// 載入邊界的轉接層：不同版本後端回傳的分區欄位名稱不一致
// （rows/seat_rows、id/zone_id、price/seat_price…），
// 這裡統一轉成正規的 ZoneCatalog，讓核心引擎不用處理欄位差異。

type catalogWire struct {
	GlobalRows  flexInt          `json:"global_rows"`
	GlobalCols  flexInt          `json:"global_cols"`
	Zones       []zoneWire       `json:"zones"`
	MinPerOrder *flexInt         `json:"min_per_order"`
	MaxPerOrder *flexInt         `json:"max_per_order"`
	Active      *bool            `json:"active"`
	SalesWindow *salesWindowWire `json:"sales_window"`
}

type salesWindowWire struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

type zoneWire struct {
	id           string
	name         string
	code         string
	price        *float64
	rows         int
	cols         int
	occupied     []SeatCoord
	ticketTypeID *int
}

// flexInt 接受 JSON 數字或數字字串
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	*f = flexInt(n)
	return nil
}

func firstRaw(raw map[string]json.RawMessage, keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}

func (z *zoneWire) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := firstRaw(raw, "id", "zone_id", "zoneId"); ok {
		// id 可能是字串或數字
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			z.id = s
		} else {
			var n int
			if err := json.Unmarshal(v, &n); err != nil {
				return fmt.Errorf("invalid zone id: %s", v)
			}
			z.id = strconv.Itoa(n)
		}
	}
	if v, ok := firstRaw(raw, "name", "zone_name"); ok {
		if err := json.Unmarshal(v, &z.name); err != nil {
			return err
		}
	}
	if v, ok := firstRaw(raw, "code"); ok {
		if err := json.Unmarshal(v, &z.code); err != nil {
			return err
		}
	}
	if v, ok := firstRaw(raw, "price", "seat_price"); ok {
		var p float64
		if err := json.Unmarshal(v, &p); err != nil {
			// 字串價格也接受
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("invalid zone price: %s", v)
			}
			parsed, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("invalid zone price: %s", v)
			}
			p = parsed
		}
		z.price = &p
	}
	if v, ok := firstRaw(raw, "rows", "seat_rows"); ok {
		var n flexInt
		if err := json.Unmarshal(v, &n); err != nil {
			return err
		}
		z.rows = int(n)
	}
	if v, ok := firstRaw(raw, "cols", "seat_cols"); ok {
		var n flexInt
		if err := json.Unmarshal(v, &n); err != nil {
			return err
		}
		z.cols = int(n)
	}
	if v, ok := firstRaw(raw, "occupied_seats", "taken"); ok {
		var seats []seatCoordWire
		if err := json.Unmarshal(v, &seats); err != nil {
			return err
		}
		for _, s := range seats {
			z.occupied = append(z.occupied, SeatCoord(s))
		}
	}
	if v, ok := firstRaw(raw, "ticket_type_id", "ticket_id"); ok {
		var n int
		if err := json.Unmarshal(v, &n); err != nil {
			return err
		}
		z.ticketTypeID = &n
	}
	return nil
}

type seatCoordWire struct {
	Row int
	Col int
}

func (s *seatCoordWire) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := firstRaw(raw, "r", "row"); ok {
		if err := json.Unmarshal(v, &s.Row); err != nil {
			return err
		}
	}
	if v, ok := firstRaw(raw, "c", "col"); ok {
		if err := json.Unmarshal(v, &s.Col); err != nil {
			return err
		}
	}
	return nil
}

// ParseZoneCatalog 解析任一接受的 wire 形狀成正規 ZoneCatalog。
// 缺 id 的分區補上 zone-<序號>（1-based，分區順序穩定所以 id 也穩定）。
func ParseZoneCatalog(data []byte) (*ZoneCatalog, error) {
	var wire catalogWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parse zone catalog: %w", err)
	}

	zones := make([]*Zone, 0, len(wire.Zones))
	for i, zw := range wire.Zones {
		id := zw.id
		if id == "" {
			id = fmt.Sprintf("zone-%d", i+1)
		}
		name := zw.name
		if name == "" {
			name = zw.code
		}
		rows, cols := zw.rows, zw.cols
		if rows <= 0 || cols <= 0 {
			rows, cols = int(wire.GlobalRows), int(wire.GlobalCols)
		}
		grid := NewSeatGrid(rows, cols)
		grid.ReplaceOccupied(zw.occupied)
		zones = append(zones, &Zone{
			ID:           id,
			Name:         name,
			Grid:         grid,
			Price:        zw.price,
			TicketTypeID: zw.ticketTypeID,
		})
	}

	catalog := NewZoneCatalog(int(wire.GlobalRows), int(wire.GlobalCols), zones)
	if wire.MinPerOrder != nil {
		catalog.MinPerOrder = int(*wire.MinPerOrder)
	} else {
		catalog.MinPerOrder = 1
	}
	if wire.MaxPerOrder != nil {
		catalog.MaxPerOrder = int(*wire.MaxPerOrder)
	} else {
		catalog.MaxPerOrder = catalog.MinPerOrder
	}
	if wire.Active != nil {
		catalog.Active = *wire.Active
	}
	if wire.SalesWindow != nil {
		catalog.SalesWindow = SalesWindow{Start: wire.SalesWindow.Start, End: wire.SalesWindow.End}
	}
	return catalog, nil
}
