package response_models

import (
	"time"

	"scaffold/internal/models/db_models"
)

type AccountResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Avatar          string     `json:"avatar"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	Token           string     `json:"token,omitempty"`
}

func NewAccountResponse(a *db_models.Account, token string) *AccountResponse {
	return &AccountResponse{
		ID:              a.ID.String(),
		Name:            a.Name,
		Email:           a.Email,
		Avatar:          a.Avatar,
		EmailVerifiedAt: a.EmailVerifiedAt,
		Token:           token,
	}
}
