package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"smartplates/config"
	"smartplates/models"
	"smartplates/services/tasks"
	"smartplates/services/user"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// redisOpts builds the asynq Redis connection from app config.
func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// NewReminderClient returns the asynq client handlers use to enqueue
// reminders.
func NewReminderClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(userSvc user.UserService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeMealReminder, handleMealReminderTask(userSvc))

	// Start async worker with retry logic.
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleMealReminderTask records the reminder as an in-app notification on
// the user document.
func handleMealReminderTask(userSvc user.UserService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] reminder for user %s: %s (%s %s)", p.UserID, p.Body, p.MealType, p.Date)

		n := models.Notification{
			ID:        uuid.NewString(),
			Title:     p.Title,
			Body:      p.Body,
			CreatedAt: time.Now(),
		}
		if err := userSvc.NotifyUser(p.UserID, n); err != nil {
			log.Printf("[ReminderHandler] failed to record notification: %v", err)
			return err
		}
		return nil
	}
}
