package middleware

import (
	"errors"

	"skillswap/internal/auth"
	"skillswap/internal/logger"
	"skillswap/pkg/apperrors"
	"skillswap/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserSyncer заводит/обновляет локальную запись пользователя по данным токена
type UserSyncer interface {
	SyncUser(db *gorm.DB, identity auth.Identity) error
}

// TokenParser - то, что нужно middleware от auth.TokenManager
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type AuthOptions struct {
	// AllowQueryToken - принимать ?token=... (браузерный WebSocket не умеет слать заголовки)
	AllowQueryToken bool
}

// AuthMiddleware - проверка JWT и синхронизация пользователя
func AuthMiddleware(tokens TokenParser, syncer UserSyncer, opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok && opts.AllowQueryToken {
			tokenStr = c.Query("token")
			ok = tokenStr != ""
		}
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				apperrors.HandleError(c, apperrors.ErrTokenExpired)
				return
			}
			apperrors.HandleError(c, apperrors.ErrInvalidToken.WithError(err))
			return
		}

		identity := claims.Identity()
		ctx := logger.WithUserID(c.Request.Context(), identity.UserID)
		c.Request = c.Request.WithContext(ctx)

		if syncer != nil {
			if err := syncer.SyncUser(GetDB(c), identity); err != nil {
				apperrors.HandleError(c, err)
				return
			}
		}

		c.Set(contextkeys.UserIDKey, identity.UserID)
		c.Set(contextkeys.UserEmailKey, identity.Email)
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

// GetDB возвращает *gorm.DB, положенный DBMiddleware (или nil)
func GetDB(c *gin.Context) *gorm.DB {
	db, _ := c.Get(string(contextkeys.DBContextKey))
	gormDB, _ := db.(*gorm.DB)
	return gormDB
}
