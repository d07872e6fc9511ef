package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"skytrip/config"
	"skytrip/services/resale"
	"skytrip/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReconcileWorker runs the async worker in background. It retries the
// bookkeeping half of resale purchases that committed a new booking but
// failed to update the offer or the original booking.
func InitReconcileWorker(resaleSvc resale.ResaleService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeResaleReconcile, handleReconcileTask(resaleSvc))

	go func() {
		log.Println("[ReconcileWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReconcileWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReconcileWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReconcileTask(resaleSvc resale.ResaleService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ResaleReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReconcileWorker] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReconcileWorker] reconciling resale purchase: offer %s, booking %s", p.OfferID, p.NewBookingID)

		if err := resaleSvc.Reconcile(ctx, p); err != nil {
			log.Printf("[ReconcileWorker] reconcile failed, will retry: %v", err)
			return err
		}
		return nil
	}
}

// NewQueueClient builds the asynq client used to enqueue reconcile tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}
