package models

import "time"

type PalmDevice struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Location string `gorm:"type:varchar(255)" json:"location"`
	// APIToken is the bearer credential for this device. The raw value is
	// returned exactly once, in the registration response.
	APIToken   string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	IsActive   bool       `gorm:"not null;default:true" json:"isActive"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updatedAt"`
}
