package services

// Типы событий, которые сервисы рассылают подключенным клиентам
const (
	EventSwapCreated    = "swap.created"
	EventSwapUpdated    = "swap.updated"
	EventMessageCreated = "message.created"
	EventReviewCreated  = "review.created"
)

// EventPublisher доставляет событие всем открытым соединениям перечисленных пользователей.
// Реализация не должна блокировать вызывающего.
type EventPublisher interface {
	Publish(userIDs []string, eventType string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish([]string, string, any) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
