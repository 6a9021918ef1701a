package dto

import (
	"time"

	"skillswap/internal/models"

	"gorm.io/datatypes"
)

type ProgressInput struct {
	CurrentSession int      `json:"currentSession" validate:"min=0,max=1000"`
	TotalSessions  int      `json:"totalSessions" validate:"min=0,max=1000"`
	Milestones     []string `json:"milestones" validate:"max=50,dive,max=255"`
}

func (p *ProgressInput) toModel() models.Progress {
	if p == nil {
		return models.Progress{}
	}
	return models.Progress{
		CurrentSession: p.CurrentSession,
		TotalSessions:  p.TotalSessions,
		Milestones:     p.Milestones,
	}
}

type SessionDetailsInput struct {
	Type     string `json:"type" validate:"omitempty,oneof=online in-person"`
	Platform string `json:"platform" validate:"max=100"`
	Location string `json:"location" validate:"max=255"`
}

func (s *SessionDetailsInput) toModel() models.SessionDetails {
	if s == nil {
		return models.SessionDetails{}
	}
	return models.SessionDetails{
		Type:     models.SessionType(s.Type),
		Platform: s.Platform,
		Location: s.Location,
	}
}

// CreateSwapRequest - requesterId в теле игнорируется, им всегда становится вызывающий
type CreateSwapRequest struct {
	ProviderID     string               `json:"providerId" validate:"required,max=255"`
	SkillID        uint                 `json:"skillId" validate:"required"`
	RequestMessage string               `json:"requestMessage" validate:"max=2000"`
	Progress       *ProgressInput       `json:"progress" validate:"omitnil"`
	SessionDetails *SessionDetailsInput `json:"sessionDetails" validate:"omitnil"`
	NextSessionAt  *time.Time           `json:"nextSessionAt"`
}

func (r *CreateSwapRequest) ToModel(requesterID string) *models.Swap {
	return &models.Swap{
		RequesterID:    requesterID,
		ProviderID:     r.ProviderID,
		SkillID:        r.SkillID,
		Status:         models.SwapStatusPending,
		Progress:       datatypes.NewJSONType(r.Progress.toModel()),
		SessionDetails: datatypes.NewJSONType(r.SessionDetails.toModel()),
		NextSessionAt:  r.NextSessionAt,
		RequestMessage: r.RequestMessage,
	}
}

type UpdateSwapRequest struct {
	Status         *string              `json:"status" validate:"omitnil,swap-status"`
	Progress       *ProgressInput       `json:"progress" validate:"omitnil"`
	SessionDetails *SessionDetailsInput `json:"sessionDetails" validate:"omitnil"`
	NextSessionAt  *time.Time           `json:"nextSessionAt"`
	RequestMessage *string              `json:"requestMessage" validate:"omitnil,max=2000"`
}

func (r *UpdateSwapRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.Progress != nil {
		updates["progress"] = datatypes.NewJSONType(r.Progress.toModel())
	}
	if r.SessionDetails != nil {
		updates["session_details"] = datatypes.NewJSONType(r.SessionDetails.toModel())
	}
	if r.NextSessionAt != nil {
		updates["next_session_at"] = *r.NextSessionAt
		updates["reminder_sent_at"] = nil
	}
	if r.RequestMessage != nil {
		updates["request_message"] = *r.RequestMessage
	}
	return updates
}

type ListSwapsQuery struct {
	Status string `form:"status" validate:"omitempty,swap-status"`
	Search string `form:"search" validate:"max=255"`
}

// SwapResponse - обмен с вычисленным процентом прогресса
type SwapResponse struct {
	models.Swap
	ProgressPercent int `json:"progressPercent"`
}

func NewSwapResponse(swap *models.Swap) *SwapResponse {
	return &SwapResponse{
		Swap:            *swap,
		ProgressPercent: swap.Progress.Data().Percent(),
	}
}

func NewSwapResponses(swaps []models.Swap) []*SwapResponse {
	out := make([]*SwapResponse, 0, len(swaps))
	for i := range swaps {
		out = append(out, NewSwapResponse(&swaps[i]))
	}
	return out
}

// SwapCounts - счетчики вкладок страницы "Мои обмены"
type SwapCounts struct {
	Active    int64 `json:"active"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}

func NewSwapCounts(byStatus map[models.SwapStatus]int64) *SwapCounts {
	counts := &SwapCounts{}
	for status, n := range byStatus {
		switch {
		case status.IsActive():
			counts.Active += n
		case status == models.SwapStatusPending:
			counts.Pending += n
		case status == models.SwapStatusCompleted:
			counts.Completed += n
		case status == models.SwapStatusCancelled:
			counts.Cancelled += n
		}
		counts.Total += n
	}
	return counts
}
