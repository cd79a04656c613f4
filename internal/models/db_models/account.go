package db_models

import "time"

type Account struct {
	BaseModel
	Name            string `gorm:"size:50;uniqueIndex"`
	Email           string `gorm:"size:50;uniqueIndex"`
	PasswordHash    string
	Avatar          string
	EmailVerifiedAt *time.Time
}
