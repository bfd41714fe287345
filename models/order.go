package models

import "time"

// Canonical order statuses. The column is an open varchar: whatever status a
// caller submits is persisted verbatim, these are just the values the kiosk
// flow actually produces.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Reference is a server-generated human-readable id printed on the
	// kiosk screen, not a lookup key.
	Reference  string    `gorm:"type:varchar(32);uniqueIndex" json:"reference"`
	CustomerID *uint     `gorm:"index" json:"customerId"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	// CustomerName is a denormalized snapshot taken at creation; it is not
	// kept in sync with the customer row.
	CustomerName string      `gorm:"type:varchar(255)" json:"customerName"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount  float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"totalAmount"`
	PalmDeviceID *uint       `gorm:"index" json:"palmDeviceId"`
	PalmDevice   *PalmDevice `gorm:"foreignKey:PalmDeviceID" json:"palmDevice,omitempty"`
	OrderItems   []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt    time.Time   `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updatedAt"`
	CompletedAt  *time.Time  `json:"completedAt,omitempty"`
}
