package background

import (
	"context"
	"log"
	"sync"
	"time"

	"giftnest/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic maintenance work: reset-token cleanup
// and the soft-deleted gift report.
type JobScheduler struct {
	scheduler gocron.Scheduler
	tokenRepo repositories.ResetTokenRepository
	giftRepo  repositories.GiftRepository
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(tokenRepo repositories.ResetTokenRepository, giftRepo repositories.GiftRepository) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		tokenRepo: tokenRepo,
		giftRepo:  giftRepo,
		jobs:      make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	tokenJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.purgeExpiredTokens),
		gocron.WithName("reset-token-purge"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create reset-token purge job: %v", err)
	} else {
		js.jobs["reset-token-purge"] = tokenJob
	}

	reportJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.reportDeletedGifts),
		gocron.WithName("deleted-gift-report"),
	)
	if err != nil {
		log.Printf("Failed to create deleted-gift report job: %v", err)
	} else {
		js.jobs["deleted-gift-report"] = reportJob
	}
}

// purgeExpiredTokens drops reset tokens that are past expiry or already
// consumed. Expired tokens are rejected on use regardless; this keeps the
// table small.
func (js *JobScheduler) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := js.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("WARN: reset-token purge failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Purged %d expired reset tokens", deleted)
	}
}

func (js *JobScheduler) reportDeletedGifts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := js.giftRepo.CountDeleted(ctx)
	if err != nil {
		log.Printf("WARN: deleted-gift report failed: %v", err)
		return
	}
	log.Printf("Soft-deleted gifts awaiting review: %d", count)
}
