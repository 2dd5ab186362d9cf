package model

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Zone 一個定價分區，對應一種可販售的票種。
// Price 為 nil 表示「未設定價格」，與 0 元不同；
// TicketTypeID 為 nil 表示該分區無法成立訂單。
type Zone struct {
	ID           string
	Name         string
	Grid         *SeatGrid
	Price        *float64
	TicketTypeID *int
}

// SalesWindow 開賣起迄時間；兩者都存在時必須 Start < End
type SalesWindow struct {
	Start *time.Time
	End   *time.Time
}

// Contains 判斷 t 是否落在販售時間內；缺少任一端點視為未開賣
func (w SalesWindow) Contains(t time.Time) bool {
	if w.Start == nil || w.End == nil {
		return false
	}
	return !t.Before(*w.Start) && t.Before(*w.End)
}

// ZoneCatalog 分區目錄：選位時的唯讀查詢結構。
// Zones 順序即顯示/編輯順序，第一個分區是全域網格尺寸的依據。
type ZoneCatalog struct {
	GlobalRows  int
	GlobalCols  int
	Zones       []*Zone
	MinPerOrder int
	MaxPerOrder int
	SalesWindow SalesWindow
	Active      bool

	index map[string]*Zone
}

// NewZoneCatalog 建立目錄並解析每個分區的網格尺寸。
// 分區自己的 rows/cols 皆為正數時採用，否則繼承全域尺寸；
// 尺寸在這裡解析一次，之後改動全域值不會回頭影響已解析的分區。
func NewZoneCatalog(globalRows, globalCols int, zones []*Zone) *ZoneCatalog {
	c := &ZoneCatalog{
		GlobalRows: globalRows,
		GlobalCols: globalCols,
		Zones:      zones,
		index:      make(map[string]*Zone, len(zones)),
	}
	for _, z := range zones {
		if z.Grid == nil || z.Grid.Rows <= 0 || z.Grid.Cols <= 0 {
			occupied := []SeatCoord(nil)
			if z.Grid != nil {
				occupied = z.Grid.OccupiedSeats()
			}
			z.Grid = NewSeatGrid(globalRows, globalCols)
			z.Grid.ReplaceOccupied(occupied)
		}
		c.index[z.ID] = z
	}
	return c
}

// ZoneOf 以 id 查分區；查不到屬於呼叫端錯誤（選位程式只該使用目錄列舉出的 id）
func (c *ZoneCatalog) ZoneOf(zoneID string) (*Zone, bool) {
	z, ok := c.index[zoneID]
	return z, ok
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice 千分位格式化，顯示用
func FormatPrice(price float64) string {
	return pricePrinter.Sprintf("%v", number.Decimal(price))
}

// PriceSummary 串接所有分區的「名稱 $價格」；未設定價格的分區只顯示名稱。
// 此格式是 UI 對齊用的顯示契約，不是商業規則。
func (c *ZoneCatalog) PriceSummary() string {
	parts := make([]string, 0, len(c.Zones))
	for _, z := range c.Zones {
		if z.Price == nil {
			parts = append(parts, z.Name)
			continue
		}
		parts = append(parts, z.Name+" $"+FormatPrice(*z.Price))
	}
	return strings.Join(parts, " / ")
}
