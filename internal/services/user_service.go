package services

import (
	"errors"
	"sync"
	"time"

	"skillswap/internal/auth"
	"skillswap/internal/logger"
	"skillswap/internal/models"
	"skillswap/internal/repositories"
	"skillswap/internal/services/dto"
	"skillswap/pkg/apperrors"

	"gorm.io/gorm"
)

// userSyncTTL - как долго не повторять upsert для неизменившихся claims
const userSyncTTL = 10 * time.Minute

type UserService interface {
	// SyncUser создает или обновляет пользователя по данным токена
	SyncUser(db *gorm.DB, identity auth.Identity) error
	GetUser(db *gorm.DB, id string) (*models.User, error)
	UpdateProfile(db *gorm.DB, id string, req *dto.UpdateProfileRequest) (*models.User, error)
}

type syncEntry struct {
	identity auth.Identity
	expires  time.Time
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository

	mu     sync.Mutex
	synced map[string]syncEntry
	now    func() time.Time
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		synced:   make(map[string]syncEntry),
		now:      time.Now,
	}
}

func (s *UserServiceImpl) SyncUser(db *gorm.DB, identity auth.Identity) error {
	if s.recentlySynced(identity) {
		return nil
	}

	user := &models.User{
		ID:              identity.UserID,
		FirstName:       identity.FirstName,
		LastName:        identity.LastName,
		ProfileImageURL: identity.ProfileImageURL,
	}
	if identity.Email != "" {
		email := identity.Email
		user.Email = &email
	}

	err := s.userRepo.Upsert(db, user)
	if errors.Is(err, gorm.ErrDuplicatedKey) && user.Email != nil {
		// email уже занят другой учетной записью - сохраняем пользователя без него
		logger.Warn("Email already belongs to another user, syncing without it", "user_id", identity.UserID)
		user.Email = nil
		err = s.userRepo.Upsert(db, user)
	}
	if err != nil {
		return apperrors.InternalError(err)
	}

	s.mu.Lock()
	s.synced[identity.UserID] = syncEntry{identity: identity, expires: s.now().Add(userSyncTTL)}
	s.mu.Unlock()
	return nil
}

func (s *UserServiceImpl) recentlySynced(identity auth.Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.synced[identity.UserID]
	if !ok {
		return false
	}
	if s.now().After(entry.expires) {
		delete(s.synced, identity.UserID)
		return false
	}
	return entry.identity == identity
}

func (s *UserServiceImpl) GetUser(db *gorm.DB, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		return nil, handleUserError(err)
	}
	return user, nil
}

// UpdateProfile меняет только поля, которыми владеет пользователь (location, bio)
func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, id string, req *dto.UpdateProfileRequest) (*models.User, error) {
	if err := s.userRepo.UpdateProfile(db, id, req.ToUpdates()); err != nil {
		return nil, handleUserError(err)
	}
	return s.GetUser(db, id)
}

func handleUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.NewNotFoundError("user", "User not found")
	}
	return apperrors.InternalError(err)
}
