package models

// All - список моделей в порядке миграции (зависимости раньше зависимых)
func All() []interface{} {
	return []interface{}{
		&User{},
		&Skill{},
		&Swap{},
		&Message{},
		&Review{},
		&File{},
	}
}
