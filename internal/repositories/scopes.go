package repositories

import (
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern готовит подстроку для ILIKE: спецсимволы экранируются,
// чтобы "100%" искал буквальный процент.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// normalizePage приводит limit/offset к допустимому диапазону
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		l, o := normalizePage(limit, offset)
		return db.Limit(l).Offset(o)
	}
}

func participantOf(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(swaps.requester_id = ? OR swaps.provider_id = ?)", userID, userID)
	}
}
