package dto

// UpdateProfileRequest - PATCH /api/auth/user. Имя и аватар приходят от провайдера входа.
type UpdateProfileRequest struct {
	Location *string `json:"location" validate:"omitnil,max=255"`
	Bio      *string `json:"bio" validate:"omitnil,max=2000"`
}

func (r *UpdateProfileRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Location != nil {
		updates["location"] = *r.Location
	}
	if r.Bio != nil {
		updates["bio"] = *r.Bio
	}
	return updates
}
