package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP purposes. An empty purpose means registration.
const (
	OtpPurposeForgotPassword = "forgot-password"
)

// OtpExpiry is how long a code stays valid after it is issued.
const OtpExpiry = 5 * time.Minute

type OtpRecord struct {
	ID      uint   `gorm:"primaryKey"`
	Email   string `gorm:"index"`
	Phone   string `gorm:"index"`
	Code    string `gorm:"not null"`
	Purpose string
	// Pending registration profile, staged until the OTP is consumed.
	Name      string
	Password  string
	Consumed  bool `gorm:"default:false"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// Expired reports whether the record is past its expiry at the given instant.
func (o *OtpRecord) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// LatestOtp returns the most recently issued record matching the contact
// method and purpose.
func LatestOtp(db *gorm.DB, email, phone, purpose string) (*OtpRecord, error) {
	query := db.Model(&OtpRecord{})
	if email != "" {
		query = query.Where("email = ?", email)
	}
	if phone != "" {
		query = query.Where("phone = ?", phone)
	}
	query = query.Where("purpose = ?", purpose)

	var record OtpRecord
	if err := query.Order("created_at DESC").First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ConsumeOtp flips the consumed flag in a single conditional update so a
// record can be used at most once even under concurrent requests. Returns
// false if the record was already consumed or has expired.
func ConsumeOtp(db *gorm.DB, id uint) (bool, error) {
	res := db.Model(&OtpRecord{}).
		Where("id = ? AND consumed = ? AND expires_at > ?", id, false, time.Now()).
		Update("consumed", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SweepExpiredOtps deletes records past their expiry and returns how many
// rows were removed.
func SweepExpiredOtps(db *gorm.DB) (int64, error) {
	res := db.Where("expires_at < ?", time.Now()).Delete(&OtpRecord{})
	return res.RowsAffected, res.Error
}
