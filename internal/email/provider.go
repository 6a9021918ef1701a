package email

import (
	"log/slog"
	"strings"

	"skillswap/internal/logger"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	Send(email *Email) error
}

// LogProvider пишет письма в лог вместо отправки (SMTP не настроен)
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(email *Email) error {
	logger.Info("Email not sent, SMTP is disabled",
		slog.String("to", strings.Join(email.To, ",")),
		slog.String("subject", email.Subject),
	)
	return nil
}
