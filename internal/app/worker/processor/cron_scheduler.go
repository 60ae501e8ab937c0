package processor

import (
	"context"
	"log"

	"campusrate/internal/app/worker/service"

	"github.com/robfig/cron/v3"
)

// CronScheduler периодически пересобирает снапшот статистики платформы
type CronScheduler struct {
	cron     *cron.Cron
	statsSvc service.StatsServiceInterface
}

func NewCronScheduler(statsSvc service.StatsServiceInterface) *CronScheduler {
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cron.VerbosePrintfLogger(log.Default())),
	)

	return &CronScheduler{
		cron:     c,
		statsSvc: statsSvc,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	log.Printf("Starting cron scheduler with schedule: %s", schedule)

	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Cron job triggered: building platform stats snapshot")

		if _, err := s.statsSvc.BuildSnapshot(ctx); err != nil {
			log.Printf("ERROR: Failed to build stats snapshot: %v", err)
		} else {
			log.Println("Cron job completed: stats snapshot built successfully")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started")

	// Первый снапшот строим сразу, чтобы не ждать расписания
	log.Println("Performing initial stats snapshot build...")
	if _, err := s.statsSvc.BuildSnapshot(ctx); err != nil {
		log.Printf("WARNING: Failed initial stats snapshot build: %v", err)
	} else {
		log.Println("Initial stats snapshot build completed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
