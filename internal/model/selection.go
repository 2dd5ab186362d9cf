package model

import (
	apperrors "go-gin-seat-reservation/pkg/app_errors"
)

// Pick 買家選取的一個座位
type Pick struct {
	ZoneID string `json:"zone_id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// SelectionEngine 互動選位狀態機。
// 狀態：空 →（第一個 pick 鎖定票種）→ 單一票種鎖定 → 移除最後一個 pick 回到空。
// 單執行緒、同步、無 I/O；一個買家 session 一個實例。
type SelectionEngine struct {
	catalog *ZoneCatalog
	picks   []Pick

	// locked 與 lockTicketTypeID 分開記錄：
	// 鎖定到「無票種」分區時 lockTicketTypeID 也是 nil，不能拿 nil 當未鎖定
	locked           bool
	lockTicketTypeID *int
}

func NewSelectionEngine(catalog *ZoneCatalog) *SelectionEngine {
	return &SelectionEngine{catalog: catalog}
}

func sameTicketType(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Toggle 切換座位選取狀態。
//  1. 分區不存在或座標超出網格：不動作
//  2. 已售出座位：回傳 ErrSeatUnavailable，狀態不變
//  3. 已選取的座位：取消選取；清空時釋放票種鎖
//  4. 新增時票種與目前鎖定不同：回傳 ErrCrossTypeSelection，狀態不變。
//     訂單必須是單一票種，下游的訂單/金流模型都以此為前提。
func (e *SelectionEngine) Toggle(zoneID string, row, col int) error {
	zone, ok := e.catalog.ZoneOf(zoneID)
	if !ok {
		return nil
	}
	if !zone.Grid.Contains(row, col) {
		return nil
	}
	if zone.Grid.IsOccupied(row, col) {
		return apperrors.ErrSeatUnavailable
	}

	for i, p := range e.picks {
		if p.ZoneID == zoneID && p.Row == row && p.Col == col {
			e.picks = append(e.picks[:i], e.picks[i+1:]...)
			if len(e.picks) == 0 {
				e.locked = false
				e.lockTicketTypeID = nil
			}
			return nil
		}
	}

	if e.locked && !sameTicketType(zone.TicketTypeID, e.lockTicketTypeID) {
		return apperrors.ErrCrossTypeSelection
	}
	if !e.locked {
		e.locked = true
		e.lockTicketTypeID = zone.TicketTypeID
	}

	// 保留點選順序，摘要顯示才有確定性；不排序
	e.picks = append(e.picks, Pick{ZoneID: zoneID, Row: row, Col: col})
	return nil
}

func (e *SelectionEngine) IsSelected(zoneID string, row, col int) bool {
	for _, p := range e.picks {
		if p.ZoneID == zoneID && p.Row == row && p.Col == col {
			return true
		}
	}
	return false
}

func (e *SelectionEngine) Count() int {
	return len(e.picks)
}

// TotalPrice 依 pick 即時加總，未設定價格的分區以 0 計
func (e *SelectionEngine) TotalPrice() float64 {
	var total float64
	for _, p := range e.picks {
		if zone, ok := e.catalog.ZoneOf(p.ZoneID); ok && zone.Price != nil {
			total += *zone.Price
		}
	}
	return total
}

// TicketTypeID 目前鎖定的票種；未鎖定或鎖定到無票種分區時為 nil
func (e *SelectionEngine) TicketTypeID() *int {
	return e.lockTicketTypeID
}

// Picks 回傳點選順序的副本
func (e *SelectionEngine) Picks() []Pick {
	out := make([]Pick, len(e.picks))
	copy(out, e.picks)
	return out
}

// Reset 清空選取；離開選位畫面或訂單送出成功後呼叫
func (e *SelectionEngine) Reset() {
	e.picks = nil
	e.locked = false
	e.lockTicketTypeID = nil
}
