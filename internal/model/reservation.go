package model

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus 訂位狀態類型
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// IsValid 驗證狀態是否有效
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	transitions := map[ReservationStatus][]ReservationStatus{
		ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
		ReservationStatusConfirmed: {ReservationStatusCancelled},
		ReservationStatusCancelled: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// RowLabel 將 0-based 列號轉成字母標籤：0→A、1→B；超過 Z 後採試算表式 AA、AB…
func RowLabel(row int) string {
	if row < 0 {
		return ""
	}
	label := ""
	for {
		label = string(rune('A'+row%26)) + label
		row = row/26 - 1
		if row < 0 {
			break
		}
	}
	return label
}

// ReservationSeat 訂位的座位明細，一個 pick 一筆
type ReservationSeat struct {
	ID            int      `json:"id" db:"id"`
	ReservationID int      `json:"reservation_id" db:"reservation_id"`
	ZoneID        string   `json:"zone_id" db:"zone_id"`
	Row           int      `json:"row" db:"seat_row"`
	Col           int      `json:"col" db:"seat_col"`
	RowLabel      string   `json:"row_label" db:"row_label"`
	SeatNumber    int      `json:"seat_number" db:"seat_number"`
	Price         *float64 `json:"price,omitempty" db:"price"`
}

// Reservation 訂位模型
type Reservation struct {
	ID            int               `json:"id" db:"id"`
	ReservationID uuid.UUID         `json:"reservation_id" db:"reservation_uuid"`
	EventID       int               `json:"event_id" db:"event_id"`
	TicketTypeID  int               `json:"ticket_type_id" db:"ticket_type_id"`
	Quantity      int               `json:"quantity" db:"quantity"`
	TotalAmount   float64           `json:"total_amount" db:"total_amount"`
	Status        ReservationStatus `json:"status" db:"status"`
	Notes         *string           `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time        `json:"deleted_at,omitempty" db:"deleted_at"`

	Seats []ReservationSeat `json:"seats" db:"-"`
}

// IsDeleted 檢查訂位是否已刪除
func (r *Reservation) IsDeleted() bool {
	return r.DeletedAt != nil
}

// PickRequest 買家送出的單一座位
type PickRequest struct {
	ZoneID string `json:"zone_id" binding:"required"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// CreateReservationRequest 建立訂位請求。
// Picks 不在 binding 層限制為非空：空選取要走 ErrEmptySelection 的明確錯誤路徑。
type CreateReservationRequest struct {
	EventID   uuid.UUID     `json:"event_id" binding:"required"`
	Picks     []PickRequest `json:"picks"`
	Notes     *string       `json:"notes"`
	SessionID string        `json:"session_id"`
}

// ReservationResponse 訂位響應
type ReservationResponse struct {
	ID           int               `json:"id"`
	EventID      int               `json:"event_id"`
	TicketTypeID int               `json:"ticket_type_id"`
	Quantity     int               `json:"quantity"`
	TotalAmount  float64           `json:"total_amount"`
	Status       string            `json:"status"`
	Seats        []ReservationSeat `json:"seats"`
	CreatedAt    string            `json:"created_at"`
}
