package model

import "sort"

// SeatCoord 座位座標 (0-based)
type SeatCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SeatGrid 區域座位網格：rows × cols 加上已售出座位集合。
// 已售出集合只在載入/重載時整批替換，選位動作不會改動它。
type SeatGrid struct {
	Rows int
	Cols int

	occupied map[SeatCoord]struct{}
}

func NewSeatGrid(rows, cols int) *SeatGrid {
	return &SeatGrid{
		Rows:     rows,
		Cols:     cols,
		occupied: make(map[SeatCoord]struct{}),
	}
}

// Contains 邊界檢查
func (g *SeatGrid) Contains(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// IsOccupied 座標超出範圍時回傳 false 而不報錯；呼叫端只會查詢網格自己產生的座標
func (g *SeatGrid) IsOccupied(row, col int) bool {
	if !g.Contains(row, col) {
		return false
	}
	_, ok := g.occupied[SeatCoord{Row: row, Col: col}]
	return ok
}

// ReplaceOccupied 整批替換已售出集合；超出範圍的座標直接略過
func (g *SeatGrid) ReplaceOccupied(seats []SeatCoord) {
	next := make(map[SeatCoord]struct{}, len(seats))
	for _, s := range seats {
		if g.Contains(s.Row, s.Col) {
			next[s] = struct{}{}
		}
	}
	g.occupied = next
}

func (g *SeatGrid) OccupiedCount() int {
	return len(g.occupied)
}

// OccupiedSeats 回傳排序後的已售出座位，方便測試與序列化
func (g *SeatGrid) OccupiedSeats() []SeatCoord {
	seats := make([]SeatCoord, 0, len(g.occupied))
	for s := range g.occupied {
		seats = append(seats, s)
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Col < seats[j].Col
	})
	return seats
}
