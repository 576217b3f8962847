package models

import "time"

type User struct {
	ID             string `gorm:"primaryKey" json:"id"`
	Name           string `json:"name"`
	Email          string `gorm:"index" json:"email"`
	Phone          string `gorm:"index" json:"phone"`
	Username       string `gorm:"uniqueIndex" json:"username"`
	Password       string `gorm:"not null" json:"-"`
	EmailVerified  bool   `json:"email_verified"`
	Blocked        bool   `gorm:"default:false" json:"blocked"`
	ProfilePicture string `json:"profile_picture"`
	// Storage identifier of the hosted profile picture, never sent to clients.
	ProfilePicturePublicID string    `json:"-"`
	Address                Address   `gorm:"embedded" json:"address"`
	Cart                   Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders                 []Order   `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// Address model embedded in User
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}
