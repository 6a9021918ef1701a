package workers

import (
	"context"
	"time"

	"skillswap/internal/logger"
	"skillswap/internal/repositories"
	"skillswap/internal/services"

	"gorm.io/gorm"
)

// SessionReminderWorker периодически напоминает участникам о ближайшей сессии обмена
type SessionReminderWorker struct {
	db            *gorm.DB
	swapRepo      repositories.SwapRepository
	notifications services.NotificationService
	interval      time.Duration
	window        time.Duration
	now           func() time.Time
}

func NewSessionReminderWorker(
	db *gorm.DB,
	swapRepo repositories.SwapRepository,
	notifications services.NotificationService,
	interval, window time.Duration,
) *SessionReminderWorker {
	return &SessionReminderWorker{
		db:            db,
		swapRepo:      swapRepo,
		notifications: notifications,
		interval:      interval,
		window:        window,
		now:           time.Now,
	}
}

// Start запускает фоновую проверку; останавливается вместе с ctx
func (w *SessionReminderWorker) Start(ctx context.Context) {
	go w.remindUpcomingSessions(ctx)
}

func (w *SessionReminderWorker) remindUpcomingSessions(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Session reminder worker started", "interval", w.interval.String(), "window", w.window.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session reminder worker stopped")
			return
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil {
				logger.CtxWithError(ctx, "Error sending session reminders", err)
			}
		}
	}
}

// RunOnce - один проход: сессии в ближайшие window получают по одному напоминанию.
// Отметка ставится до отправки, повторного письма не будет даже при сбое SMTP.
func (w *SessionReminderWorker) RunOnce(ctx context.Context) (int, error) {
	now := w.now()
	swaps, err := w.swapRepo.FindDueReminders(w.db, now, now.Add(w.window))
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range swaps {
		swap := &swaps[i]
		if err := w.swapRepo.MarkReminderSent(w.db, swap.ID, now); err != nil {
			logger.CtxWithError(ctx, "Failed to mark session reminder", err, "swap_id", swap.ID)
			continue
		}
		w.notifications.SessionReminder(swap)
		sent++
	}

	if sent > 0 {
		logger.CtxInfo(ctx, "Session reminders queued", "count", sent)
	}
	return sent, nil
}
