package model

import (
	apperrors "go-gin-seat-reservation/pkg/app_errors"
)

// BuildReservation 將完成的選位狀態轉成送出用的訂位 payload。
// 前置條件：至少一個 pick，且鎖定的票種存在；兩者分別以
// ErrEmptySelection / ErrMissingTicketType 回報，不混成一般錯誤。
// 座位明細依 pick 順序產生，總額一律取當下的 TotalPrice()，不用快取值。
func BuildReservation(engine *SelectionEngine, notes *string) (*Reservation, error) {
	picks := engine.Picks()
	if len(picks) == 0 {
		return nil, apperrors.ErrEmptySelection
	}

	ticketTypeID := engine.TicketTypeID()
	if ticketTypeID == nil {
		// 沒設定票種的分區無法成立訂單
		return nil, apperrors.ErrMissingTicketType
	}

	seats := make([]ReservationSeat, 0, len(picks))
	for _, p := range picks {
		var price *float64
		if zone, ok := engine.catalog.ZoneOf(p.ZoneID); ok && zone.Price != nil {
			v := *zone.Price
			price = &v
		}
		seats = append(seats, ReservationSeat{
			ZoneID:     p.ZoneID,
			Row:        p.Row,
			Col:        p.Col,
			RowLabel:   RowLabel(p.Row),
			SeatNumber: p.Col + 1,
			Price:      price,
		})
	}

	return &Reservation{
		TicketTypeID: *ticketTypeID,
		Quantity:     len(picks),
		TotalAmount:  engine.TotalPrice(),
		Status:       ReservationStatusPending,
		Notes:        notes,
		Seats:        seats,
	}, nil
}
