package services

import (
	"sync"
	"time"

	"skillswap/internal/email"
	"skillswap/internal/models"
	"skillswap/internal/repositories"

	"gorm.io/gorm"
)

// Репозитории в памяти. *gorm.DB в тестах сервисов всегда nil.

type fakeSkillRepo struct {
	skills map[uint]*models.Skill
	nextID uint
	err    error
}

func newFakeSkillRepo(skills ...*models.Skill) *fakeSkillRepo {
	r := &fakeSkillRepo{skills: make(map[uint]*models.Skill)}
	for _, s := range skills {
		r.skills[s.ID] = s
		if s.ID > r.nextID {
			r.nextID = s.ID
		}
	}
	return r
}

func (r *fakeSkillRepo) CreateSkill(_ *gorm.DB, skill *models.Skill) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	skill.ID = r.nextID
	cp := *skill
	r.skills[skill.ID] = &cp
	return nil
}

func (r *fakeSkillRepo) FindSkillByID(_ *gorm.DB, id uint) (*models.Skill, error) {
	s, ok := r.skills[id]
	if !ok {
		return nil, repositories.ErrSkillNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSkillRepo) FindSkills(_ *gorm.DB, filter repositories.SkillFilter) ([]models.Skill, int64, error) {
	var out []models.Skill
	for _, s := range r.skills {
		if filter.UserID != "" && s.UserID != filter.UserID {
			continue
		}
		if filter.IsPublic != nil && s.IsPublic != *filter.IsPublic {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), r.err
}

func (r *fakeSkillRepo) UpdateSkill(_ *gorm.DB, id uint, updates map[string]interface{}) error {
	s, ok := r.skills[id]
	if !ok {
		return repositories.ErrSkillNotFound
	}
	if name, ok := updates["name"].(string); ok {
		s.Name = name
	}
	if isPublic, ok := updates["is_public"].(bool); ok {
		s.IsPublic = isPublic
	}
	return nil
}

func (r *fakeSkillRepo) DeleteSkill(_ *gorm.DB, id uint) error {
	if r.err != nil {
		return r.err
	}
	delete(r.skills, id)
	return nil
}

type fakeSwapRepo struct {
	swaps   map[uint]*models.Swap
	nextID  uint
	updates []map[string]interface{}
}

func newFakeSwapRepo(swaps ...*models.Swap) *fakeSwapRepo {
	r := &fakeSwapRepo{swaps: make(map[uint]*models.Swap)}
	for _, s := range swaps {
		r.swaps[s.ID] = s
		if s.ID > r.nextID {
			r.nextID = s.ID
		}
	}
	return r
}

func (r *fakeSwapRepo) CreateSwap(_ *gorm.DB, swap *models.Swap) error {
	r.nextID++
	swap.ID = r.nextID
	cp := *swap
	r.swaps[swap.ID] = &cp
	return nil
}

func (r *fakeSwapRepo) FindSwapByID(_ *gorm.DB, id uint) (*models.Swap, error) {
	s, ok := r.swaps[id]
	if !ok {
		return nil, repositories.ErrSwapNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSwapRepo) FindSwaps(_ *gorm.DB, filter repositories.SwapFilter) ([]models.Swap, error) {
	var out []models.Swap
	for _, s := range r.swaps {
		if s.IsParticipant(filter.UserID) && (filter.Status == "" || string(s.Status) == filter.Status) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSwapRepo) UpdateSwap(_ *gorm.DB, id uint, updates map[string]interface{}) error {
	s, ok := r.swaps[id]
	if !ok {
		return repositories.ErrSwapNotFound
	}
	r.updates = append(r.updates, updates)
	if status, ok := updates["status"].(string); ok {
		s.Status = models.SwapStatus(status)
	}
	return nil
}

func (r *fakeSwapRepo) CountSwapsByStatus(_ *gorm.DB, userID string) (map[models.SwapStatus]int64, error) {
	counts := make(map[models.SwapStatus]int64)
	for _, s := range r.swaps {
		if s.IsParticipant(userID) {
			counts[s.Status]++
		}
	}
	return counts, nil
}

func (r *fakeSwapRepo) FindDueReminders(_ *gorm.DB, from, to time.Time) ([]models.Swap, error) {
	var out []models.Swap
	for _, s := range r.swaps {
		if s.NextSessionAt != nil && s.NextSessionAt.After(from) && !s.NextSessionAt.After(to) && s.ReminderSentAt == nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSwapRepo) MarkReminderSent(_ *gorm.DB, id uint, at time.Time) error {
	s, ok := r.swaps[id]
	if !ok {
		return repositories.ErrSwapNotFound
	}
	s.ReminderSentAt = &at
	return nil
}

type fakeMessageRepo struct {
	messages []models.Message
}

func (r *fakeMessageRepo) CreateMessage(_ *gorm.DB, message *models.Message) error {
	message.ID = uint(len(r.messages) + 1)
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) FindMessageByID(_ *gorm.DB, id uint) (*models.Message, error) {
	for i := range r.messages {
		if r.messages[i].ID == id {
			m := r.messages[i]
			return &m, nil
		}
	}
	return nil, repositories.ErrMessageNotFound
}

func (r *fakeMessageRepo) FindMessagesBySwap(_ *gorm.DB, swapID uint) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.SwapID == swapID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	reviews   []models.Review
	createErr error
}

func (r *fakeReviewRepo) CreateReview(_ *gorm.DB, review *models.Review) error {
	if r.createErr != nil {
		return r.createErr
	}
	review.ID = uint(len(r.reviews) + 1)
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepo) FindReviewByID(_ *gorm.DB, id uint) (*models.Review, error) {
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			rv := r.reviews[i]
			return &rv, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

func (r *fakeReviewRepo) FindReviews(_ *gorm.DB, filter repositories.ReviewFilter) ([]models.Review, error) {
	var out []models.Review
	for _, rv := range r.reviews {
		if filter.RevieweeID != "" && rv.RevieweeID != filter.RevieweeID {
			continue
		}
		if filter.SwapID != nil && rv.SwapID != *filter.SwapID {
			continue
		}
		out = append(out, rv)
	}
	return out, nil
}

func (r *fakeReviewRepo) FindReviewBySwapAndReviewer(_ *gorm.DB, swapID uint, reviewerID string) (*models.Review, error) {
	for i := range r.reviews {
		if r.reviews[i].SwapID == swapID && r.reviews[i].ReviewerID == reviewerID {
			rv := r.reviews[i]
			return &rv, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

type fakeUserRepo struct {
	users       map[string]*models.User
	upserts     int
	takenEmails map[string]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), takenEmails: make(map[string]bool)}
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Upsert(_ *gorm.DB, user *models.User) error {
	r.upserts++
	if user.Email != nil && r.takenEmails[*user.Email] {
		return gorm.ErrDuplicatedKey
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ *gorm.DB, id string, updates map[string]interface{}) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if loc, ok := updates["location"].(string); ok {
		u.Location = loc
	}
	if bio, ok := updates["bio"].(string); ok {
		u.Bio = bio
	}
	return nil
}

type fakeFileRepo struct {
	files     map[uint]*models.File
	createErr error
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[uint]*models.File)}
}

func (r *fakeFileRepo) CreateFile(_ *gorm.DB, file *models.File) error {
	if r.createErr != nil {
		return r.createErr
	}
	file.ID = uint(len(r.files) + 1)
	cp := *file
	r.files[file.ID] = &cp
	return nil
}

func (r *fakeFileRepo) FindFileByID(_ *gorm.DB, id uint) (*models.File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, repositories.ErrFileNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFileRepo) DeleteFile(_ *gorm.DB, id uint) error {
	delete(r.files, id)
	return nil
}

// =========================================================================
// События и уведомления
// =========================================================================

type publishedEvent struct {
	userIDs   []string
	eventType string
	payload   any
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(userIDs []string, eventType string, payload any) {
	p.events = append(p.events, publishedEvent{userIDs: userIDs, eventType: eventType, payload: payload})
}

type fakeNotifier struct {
	requested []uint
	changed   []string
}

func (n *fakeNotifier) SwapRequested(swap *models.Swap) {
	n.requested = append(n.requested, swap.ID)
}

func (n *fakeNotifier) SwapStatusChanged(swap *models.Swap, actorID string) {
	n.changed = append(n.changed, string(swap.Status)+":"+actorID)
}

func (n *fakeNotifier) SessionReminder(*models.Swap) {}

func (n *fakeNotifier) Wait() {}

type fakeEmailProvider struct {
	mu   sync.Mutex
	sent []*email.Email
	err  error
}

func (p *fakeEmailProvider) Send(e *email.Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, e)
	return p.err
}
