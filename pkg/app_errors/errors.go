package apperrors

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrOrganizerNotFound   = errors.New("organizer not found")
	ErrZoneConfigNotFound  = errors.New("zone config not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrZoneNotFound        = errors.New("zone not found")

	// 選位前置條件錯誤：狀態不變，使用者可修正後重試
	ErrSeatUnavailable    = errors.New("seat unavailable")
	ErrCrossTypeSelection = errors.New("cross ticket type selection")
	ErrEmptySelection     = errors.New("empty selection")
	ErrMissingTicketType  = errors.New("missing ticket type")

	ErrSeatAlreadyTaken   = errors.New("seat already taken")
	ErrSalesNotOpen       = errors.New("sales not open")
	ErrQuantityOutOfRange = errors.New("quantity out of range")

	ErrInvalidReservationStatus = errors.New("invalid reservation status")
	ErrInvalidInput             = errors.New("invalid input")
	ErrInternalServerError      = errors.New("internal server error")
)
