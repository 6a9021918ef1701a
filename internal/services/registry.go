package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	UserService         UserService
	SkillService        SkillService
	SwapService         SwapService
	MessageService      MessageService
	ReviewService       ReviewService
	StatsService        StatsService
	UploadService       UploadService
	NotificationService NotificationService
}
