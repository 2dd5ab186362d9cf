package queue

import (
	"context"
	"go-gin-seat-reservation/internal/model"
)

type Delivery struct {
	Data *model.Reservation
	Ack  func()
	Nack func(requeue bool)
}

type ReservationQueue interface {
	// 發送訂位到隊列
	PublishReservation(ctx context.Context, reservation *model.Reservation) error
	// 訂閱訂位隊列
	SubscribeReservations(ctx context.Context) (<-chan Delivery, error)
}

type ReservationQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.Reservation
}

func NewReservationQueue(bufferSize int) ReservationQueue {
	return &ReservationQueueImpl{
		ch: make(chan *model.Reservation, bufferSize),
	}
}

func (q *ReservationQueueImpl) PublishReservation(ctx context.Context, reservation *model.Reservation) error {
	q.ch <- reservation
	return nil
}

func (q *ReservationQueueImpl) SubscribeReservations(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case reservation, ok := <-q.ch:
				if !ok {
					return
				}

				// 將原始 Reservation 包裝成 Delivery 格式給 Worker
				out <- Delivery{
					Data: reservation,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- reservation // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}
