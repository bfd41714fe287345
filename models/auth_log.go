package models

import "time"

// AuthenticationLog records one palm-auth attempt by a user.
type AuthenticationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Success   bool      `gorm:"not null" json:"success"`
	Method    string    `gorm:"type:varchar(50)" json:"method"`
	Reason    string    `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

// DeviceAuthenticationLog records one auth attempt reported by a kiosk
// device, optionally linked to its PalmDevice row.
type DeviceAuthenticationLog struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	PalmDeviceID *uint       `gorm:"index" json:"palmDeviceId,omitempty"`
	PalmDevice   *PalmDevice `gorm:"foreignKey:PalmDeviceID" json:"-"`
	DeviceType   string      `gorm:"type:varchar(50);not null;default:'kiosk'" json:"deviceType"`
	Location     string      `gorm:"type:varchar(255)" json:"location"`
	Success      bool        `gorm:"not null" json:"success"`
	Reason       string      `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt    time.Time   `gorm:"not null;index" json:"createdAt"`
}
