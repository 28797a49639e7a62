package dto

type ConsumeRequest struct {
	Amount      int    `json:"amount" validate:"required,gt=0"`
	Description string `json:"description,omitempty"`
}

type ConsumeResponse struct {
	Remaining int `json:"remaining"`
}
