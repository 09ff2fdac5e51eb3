// workers/achievement_sweep.go
package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"fitness-tracker/services"

	"github.com/go-co-op/gocron/v2"
)

// AchievementSweeper periodically re-runs CheckAndUnlock for every user with a
// profile, catching unlocks for users who never hit the check endpoint.
type AchievementSweeper struct {
	Profiles     *services.ProfileService
	Achievements *services.AchievementService
	Now          func() time.Time
}

func NewAchievementSweeper(profiles *services.ProfileService, achievements *services.AchievementService) *AchievementSweeper {
	return &AchievementSweeper{
		Profiles:     profiles,
		Achievements: achievements,
		Now:          func() time.Time { return time.Now().UTC() },
	}
}

// RunOnce sweeps all users and returns how many achievements were unlocked.
// A failure for one user is logged and does not stop the sweep.
func (w *AchievementSweeper) RunOnce(ctx context.Context) (int, error) {
	userIDs, err := w.Profiles.UserIDs(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, id := range userIDs {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		unlocked, err := w.Achievements.CheckAndUnlock(ctx, id, w.Now())
		if err != nil {
			log.Printf("⚠️ [SWEEP] %s: %v", id, err)
			continue
		}
		total += len(unlocked)
	}
	return total, nil
}

// Start schedules RunOnce every interval until ctx is cancelled.
func (w *AchievementSweeper) Start(ctx context.Context, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			started := time.Now()
			n, err := w.RunOnce(ctx)
			if err != nil {
				log.Printf("[Scheduler] achievement sweep failed: %v", err)
				return
			}
			log.Printf("✅ [Scheduler] achievement sweep unlocked %d in %s", n, time.Since(started).Round(time.Millisecond))
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule achievement sweep: %w", err)
	}

	sched.Start()
	go func() {
		<-ctx.Done()
		if err := sched.Shutdown(); err != nil {
			log.Printf("[Scheduler] shutdown: %v", err)
		}
	}()
	return sched, nil
}
