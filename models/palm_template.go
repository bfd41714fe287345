package models

import "time"

// PalmTemplate holds the biometric feature vectors for one enrollment of a
// user, scoped by SDK vendor and feature version. Feature blobs are opaque to
// the server; comparison happens client-side in the vendor SDK.
type PalmTemplate struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"userId"`
	User             User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
	SDKVendor        string    `gorm:"type:varchar(50);not null;default:'veinshine'" json:"sdkVendor"`
	FeatureVersion   string    `gorm:"type:varchar(20);not null;default:'1.0'" json:"featureVersion"`
	LeftPalmFeature  string    `gorm:"type:text" json:"leftPalmFeature"`
	RightPalmFeature string    `gorm:"type:text" json:"rightPalmFeature"`
	LeftVeinFeature  string    `gorm:"type:text" json:"leftVeinFeature"`
	RightVeinFeature string    `gorm:"type:text" json:"rightVeinFeature"`
	IsActive         bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt        time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"not null" json:"updatedAt"`
}
