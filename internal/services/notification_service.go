package services

import (
	"fmt"
	"strings"
	"sync"

	"skillswap/internal/email"
	"skillswap/internal/logger"
	"skillswap/internal/models"
)

// NotificationService - письма участникам обмена. Отправка идет в фоне,
// ошибки только логируются и не влияют на ответ API.
type NotificationService interface {
	SwapRequested(swap *models.Swap)
	SwapStatusChanged(swap *models.Swap, actorID string)
	// SessionReminder - обоим участникам перед nextSessionAt
	SessionReminder(swap *models.Swap)
	// Wait дожидается отправки писем, запущенных ранее
	Wait()
}

type NotificationServiceImpl struct {
	provider  email.Provider
	templates *email.TemplateManager
	appURL    string
	wg        sync.WaitGroup
}

func NewNotificationService(provider email.Provider, templates *email.TemplateManager, appURL string) NotificationService {
	if templates == nil {
		templates = email.NewTemplateManager()
	}
	return &NotificationServiceImpl{
		provider:  provider,
		templates: templates,
		appURL:    strings.TrimRight(appURL, "/"),
	}
}

func (s *NotificationServiceImpl) SwapRequested(swap *models.Swap) {
	if swap.Provider == nil {
		return
	}

	data := email.TemplateData{
		"RecipientName": swap.Provider.DisplayName(),
		"RequesterName": displayName(swap.Requester),
		"SkillName":     skillName(swap),
		"Message":       swap.RequestMessage,
		"SwapURL":       s.swapURL(swap.ID),
	}
	s.send("swap_requested", swap.Provider, "New skill swap request", email.TemplateSwapRequested, data)
}

// SwapStatusChanged уведомляет вторую сторону: изменивший статус сам об этом знает
func (s *NotificationServiceImpl) SwapStatusChanged(swap *models.Swap, actorID string) {
	recipient := swap.Requester
	if swap.RequesterID == actorID {
		recipient = swap.Provider
	}
	if recipient == nil {
		return
	}

	data := email.TemplateData{
		"RecipientName": recipient.DisplayName(),
		"SkillName":     skillName(swap),
		"Status":        string(swap.Status),
		"SwapURL":       s.swapURL(swap.ID),
	}
	subject := fmt.Sprintf("Your skill swap is now %s", swap.Status)
	s.send("swap_status_changed", recipient, subject, email.TemplateSwapStatusChanged, data)
}

func (s *NotificationServiceImpl) SessionReminder(swap *models.Swap) {
	if swap.NextSessionAt == nil {
		return
	}
	details := swap.SessionDetails.Data()
	sessionAt := swap.NextSessionAt.UTC().Format("Mon, 02 Jan 2006 15:04 MST")

	pairs := []struct{ recipient, partner *models.User }{
		{swap.Requester, swap.Provider},
		{swap.Provider, swap.Requester},
	}
	for _, p := range pairs {
		if p.recipient == nil {
			continue
		}
		data := email.TemplateData{
			"RecipientName": p.recipient.DisplayName(),
			"PartnerName":   displayName(p.partner),
			"SkillName":     skillName(swap),
			"SessionAt":     sessionAt,
			"Platform":      details.Platform,
			"Location":      details.Location,
			"SwapURL":       s.swapURL(swap.ID),
		}
		subject := fmt.Sprintf("Reminder: %s session at %s", skillName(swap), sessionAt)
		s.send("session_reminder", p.recipient, subject, email.TemplateSessionReminder, data)
	}
}

func (s *NotificationServiceImpl) Wait() {
	s.wg.Wait()
}

func (s *NotificationServiceImpl) send(event string, recipient *models.User, subject, tpl string, data email.TemplateData) {
	if s.provider == nil || recipient.Email == nil || *recipient.Email == "" {
		return
	}

	body, err := s.templates.Render(tpl, data)
	if err != nil {
		logger.NotifyLog("email", event, err)
		return
	}

	msg := &email.Email{
		To:       []string{*recipient.Email},
		Subject:  subject,
		HTMLBody: body,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		logger.NotifyLog("email", event, s.provider.Send(msg))
	}()
}

func (s *NotificationServiceImpl) swapURL(id uint) string {
	return fmt.Sprintf("%s/swaps/%d", s.appURL, id)
}

func displayName(u *models.User) string {
	if u == nil {
		return "A SkillSwap member"
	}
	return u.DisplayName()
}

func skillName(swap *models.Swap) string {
	if swap.Skill == nil {
		return "a skill"
	}
	return swap.Skill.Name
}
