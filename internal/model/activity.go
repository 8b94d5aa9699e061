package model

import "time"

// ActivityLevel mirrors the severity of a user-visible outcome message.
type ActivityLevel string

const (
	LevelSuccess ActivityLevel = "success"
	LevelWarning ActivityLevel = "warning"
	LevelDanger  ActivityLevel = "danger"
)

// ActivityLog records one outcome message for a company.
type ActivityLog struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	CompanyID uint          `gorm:"not null;index" json:"company_id"`
	CreatedAt time.Time     `gorm:"index" json:"created_at"`
	Action    string        `gorm:"size:64;not null" json:"action"`
	Level     ActivityLevel `gorm:"size:16;not null" json:"level"`
	Message   string        `gorm:"size:512" json:"message"`
}
