package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler   *AuthHandler
	SkillHandler  *SkillHandler
	SwapHandler   *SwapHandler
	ReviewHandler *ReviewHandler
	StatsHandler  *StatsHandler
	UploadHandler *UploadHandler
	FileHandler   *FileHandler
	HealthHandler *HealthHandler
	StaticHandler *StaticHandler
}
