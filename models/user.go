package models

import "time"

// User is a registered palm-pay subject, not a login account. There is no
// password; authentication happens through palm verification on the kiosk.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	DisplayName   string         `gorm:"type:varchar(255);not null" json:"displayName"`
	Email         string         `gorm:"type:varchar(255);unique;not null" json:"email"`
	CreatedAt     time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updatedAt"`
	Cards         []Card         `gorm:"foreignKey:UserID" json:"cards,omitempty"`
	PalmTemplates []PalmTemplate `gorm:"foreignKey:UserID" json:"palmTemplates,omitempty"`
}
