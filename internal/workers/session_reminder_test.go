package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeSwapRepo реализует только то, что нужно воркеру
type fakeSwapRepo struct {
	repositories.SwapRepository

	due      []models.Swap
	findErr  error
	markErr  map[uint]error
	from, to time.Time

	mu     sync.Mutex
	marked []uint
}

func (r *fakeSwapRepo) FindDueReminders(_ *gorm.DB, from, to time.Time) ([]models.Swap, error) {
	r.from, r.to = from, to
	return r.due, r.findErr
}

func (r *fakeSwapRepo) MarkReminderSent(_ *gorm.DB, id uint, _ time.Time) error {
	if err := r.markErr[id]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marked = append(r.marked, id)
	return nil
}

func (r *fakeSwapRepo) markedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.marked)
}

type fakeNotifier struct {
	reminded []uint
}

func (n *fakeNotifier) SwapRequested(*models.Swap)             {}
func (n *fakeNotifier) SwapStatusChanged(*models.Swap, string) {}
func (n *fakeNotifier) Wait()                                  {}

func (n *fakeNotifier) SessionReminder(swap *models.Swap) {
	n.reminded = append(n.reminded, swap.ID)
}

func TestRunOnceSendsOneReminderPerSwap(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeSwapRepo{
		due:     []models.Swap{{ID: 1}, {ID: 2}, {ID: 3}},
		markErr: map[uint]error{2: repositories.ErrSwapNotFound},
	}
	notifier := &fakeNotifier{}

	w := NewSessionReminderWorker(nil, repo, notifier, time.Minute, 24*time.Hour)
	w.now = func() time.Time { return now }

	sent, err := w.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sent)
	assert.Equal(t, []uint{1, 3}, repo.marked)
	assert.Equal(t, []uint{1, 3}, notifier.reminded)
	assert.Equal(t, now, repo.from)
	assert.Equal(t, now.Add(24*time.Hour), repo.to)
}

func TestRunOnceReportsQueryError(t *testing.T) {
	repo := &fakeSwapRepo{findErr: errors.New("db down")}
	notifier := &fakeNotifier{}

	sent, err := NewSessionReminderWorker(nil, repo, notifier, time.Minute, time.Hour).RunOnce(context.Background())
	assert.Error(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, notifier.reminded)
}

func TestStartStopsWithContext(t *testing.T) {
	repo := &fakeSwapRepo{due: []models.Swap{{ID: 5}}}
	notifier := &fakeNotifier{}
	w := NewSessionReminderWorker(nil, repo, notifier, 5*time.Millisecond, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.remindUpcomingSessions(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return repo.markedCount() > 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
