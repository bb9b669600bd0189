// internal/models/admin_account.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AdminAccount struct {
	BaseModel
	Name               string       `json:"name" gorm:"size:100;not null"`
	Email              string       `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash       string       `json:"-" gorm:"size:255;not null"`
	Role               AdminRole    `json:"role" gorm:"type:varchar(20);not null;default:'admin'"`
	AssignedCategories CategoryList `json:"assigned_categories" gorm:"type:jsonb"`
	LastLoginAt        *time.Time   `json:"last_login_at"`
}

func (a *AdminAccount) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hashedPassword)
	return nil
}

func (a *AdminAccount) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
}
