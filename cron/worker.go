// File: cron/worker.go
package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"maitred/config"
	"maitred/services/cleanup"
	"maitred/services/mailer"
	"maitred/services/tasks"

	"github.com/hibiken/asynq"
)

// InitWorker runs the async worker and scheduler in the background. It
// drains email dispatch tasks and fires the nightly retention sweep.
func InitWorker(mailSvc mailer.MailerService, cleanupSvc cleanup.CleanupService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
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
	mux.HandleFunc(tasks.TypeEmailDispatch, handleEmailDispatch(mailSvc))
	mux.HandleFunc(tasks.TypeEmailDrain, handleEmailDrain(mailSvc))
	mux.HandleFunc(tasks.TypeSweepRun, handleSweep(cleanupSvc))

	// Start async worker with retry logic.
	go func() {
		log.Println("[Worker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	go runScheduler(redisOpts)
}

// runScheduler registers the periodic sweep and email drain tasks.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})

	registered := false
	if schedule := config.AppConfig.SweepSchedule; schedule != "" {
		if _, err := scheduler.Register(schedule, tasks.NewSweepTask()); err != nil {
			log.Printf("[Worker] failed to register sweep schedule %q: %v", schedule, err)
		} else {
			registered = true
		}
	}
	if schedule := config.AppConfig.EmailDrainSchedule; schedule != "" {
		if _, err := scheduler.Register(schedule, tasks.NewEmailDrainTask()); err != nil {
			log.Printf("[Worker] failed to register drain schedule %q: %v", schedule, err)
		} else {
			registered = true
		}
	}
	if !registered {
		return
	}

	if err := scheduler.Run(); err != nil {
		log.Printf("[Worker] scheduler stopped: %v", err)
	}
}

func handleEmailDispatch(mailSvc mailer.MailerService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.EmailDispatchPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailDispatch] invalid payload: %v", err)
			return err
		}
		return mailSvc.Dispatch(ctx, p.EntryID)
	}
}

// drainBatchSize caps how many stranded rows one drain run processes.
const drainBatchSize = 100

func handleEmailDrain(mailSvc mailer.MailerService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		delivered, err := mailSvc.DrainPending(ctx, drainBatchSize)
		if err != nil {
			log.Printf("[EmailDrain] drain failed: %v", err)
			return err
		}
		if delivered > 0 {
			log.Printf("[EmailDrain] delivered %d stranded emails", delivered)
		}
		return nil
	}
}

func handleSweep(cleanupSvc cleanup.CleanupService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		result := cleanupSvc.Sweep(ctx)
		if !result.Success {
			log.Printf("[Sweep] sweep failed: %s", result.Message)
		} else {
			log.Printf("[Sweep] removed %d past reservations", result.DeletedCount)
		}
		return nil
	}
}
