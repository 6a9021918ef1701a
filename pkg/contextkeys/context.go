package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ, по которому в контексте хранится *gorm.DB (в т.ч. транзакция)
const DBContextKey = contextKey("db")

// Ключи gin.Context, которые выставляет AuthMiddleware
const (
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)
