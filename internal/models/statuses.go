package models

type SkillCategory string
type SkillLevel string
type SkillPriority string
type SwapStatus string
type MessageType string
type AvailabilityType string
type AvailabilityLocation string
type SessionType string

const (
	SkillCategoryTech      SkillCategory = "tech"
	SkillCategoryLanguages SkillCategory = "languages"
	SkillCategoryCreative  SkillCategory = "creative"
	SkillCategoryBusiness  SkillCategory = "business"
	SkillCategoryLifestyle SkillCategory = "lifestyle"
	SkillCategoryOther     SkillCategory = "other"

	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
	SkillLevelExpert       SkillLevel = "expert"

	SkillPriorityLow    SkillPriority = "low"
	SkillPriorityMedium SkillPriority = "medium"
	SkillPriorityHigh   SkillPriority = "high"

	SwapStatusPending    SwapStatus = "pending"
	SwapStatusAccepted   SwapStatus = "accepted"
	SwapStatusInProgress SwapStatus = "in-progress"
	SwapStatusCompleted  SwapStatus = "completed"
	SwapStatusCancelled  SwapStatus = "cancelled"

	MessageTypeText   MessageType = "text"
	MessageTypeFile   MessageType = "file"
	MessageTypeSystem MessageType = "system"

	AvailabilityOngoing AvailabilityType = "ongoing"
	AvailabilityOneTime AvailabilityType = "one-time"

	AvailabilityOnline   AvailabilityLocation = "online"
	AvailabilityInPerson AvailabilityLocation = "in-person"
	AvailabilityBoth     AvailabilityLocation = "both"

	SessionOnline   SessionType = "online"
	SessionInPerson SessionType = "in-person"
)

func (c SkillCategory) IsValid() bool {
	switch c {
	case SkillCategoryTech, SkillCategoryLanguages, SkillCategoryCreative,
		SkillCategoryBusiness, SkillCategoryLifestyle, SkillCategoryOther:
		return true
	}
	return false
}

func (l SkillLevel) IsValid() bool {
	switch l {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelExpert:
		return true
	}
	return false
}

func (p SkillPriority) IsValid() bool {
	switch p {
	case SkillPriorityLow, SkillPriorityMedium, SkillPriorityHigh:
		return true
	}
	return false
}

func (t MessageType) IsValid() bool {
	switch t {
	case MessageTypeText, MessageTypeFile, MessageTypeSystem:
		return true
	}
	return false
}

func (s SwapStatus) IsValid() bool {
	_, ok := swapTransitions[s]
	return ok
}

// swapTransitions - разрешенные переходы статуса обмена.
// completed и cancelled - конечные состояния.
var swapTransitions = map[SwapStatus][]SwapStatus{
	SwapStatusPending:    {SwapStatusAccepted, SwapStatusInProgress, SwapStatusCancelled},
	SwapStatusAccepted:   {SwapStatusInProgress, SwapStatusCompleted, SwapStatusCancelled},
	SwapStatusInProgress: {SwapStatusCompleted, SwapStatusCancelled},
	SwapStatusCompleted:  nil,
	SwapStatusCancelled:  nil,
}

// CanTransitionTo сообщает, можно ли перевести обмен из s в next.
// Повторная установка того же статуса разрешена.
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	if s == next {
		return s.IsValid()
	}
	for _, allowed := range swapTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal - обмен завершен или отменен
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusCompleted || s == SwapStatusCancelled
}

// IsActive - обмен в работе (для счетчиков "активные")
func (s SwapStatus) IsActive() bool {
	return s == SwapStatusAccepted || s == SwapStatusInProgress
}
