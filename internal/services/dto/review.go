package dto

type CreateReviewRequest struct {
	SwapID     uint   `json:"swapId" validate:"required"`
	RevieweeID string `json:"revieweeId" validate:"required,max=255"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"max=2000"`
	IsPublic   *bool  `json:"isPublic"`
}

type ListReviewsQuery struct {
	UserID string `form:"userId" validate:"max=255"`
	SwapID *uint  `form:"swapId"`
}
