package models

import "time"

type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "super-admin"
)

type Admin struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      AdminRole `gorm:"type:VARCHAR(20);default:'admin'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
