package worker

import (
	"context"
	"go-gin-seat-reservation/internal/queue"
	"go-gin-seat-reservation/internal/service"
)

type ReservationWorker interface {
	// 訂閱訂位隊列
	Start(ctx context.Context) error
}

type ReservationWorkerImpl struct {
	service service.ReservationService
	queue   queue.ReservationQueue
}

func NewReservationWorker(service service.ReservationService, queue queue.ReservationQueue) ReservationWorker {
	return &ReservationWorkerImpl{
		service: service,
		queue:   queue,
	}
}

func (w *ReservationWorkerImpl) Start(ctx context.Context) error {
	msgs, _ := w.queue.SubscribeReservations(ctx)

	go func() {
		for msg := range msgs {
			// 把隊列消息落到資料庫
			err := w.service.DispatchReservation(ctx, msg.Data)

			if err != nil {
				// 資料庫暫時連不上就重試
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
