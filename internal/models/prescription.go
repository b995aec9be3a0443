// internal/models/prescription.go
package models

type Prescription struct {
	BaseModel
	OrderID    uint               `json:"order_id" gorm:"not null;index"`
	ImageURL   string             `json:"image_url" gorm:"size:500;not null"`
	Status     PrescriptionStatus `json:"status" gorm:"type:varchar(20);default:'Pending';index"`
	VerifiedBy *uint              `json:"verified_by,omitempty"`

	// Relationships
	Order    Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Verifier *User `json:"verifier,omitempty" gorm:"foreignKey:VerifiedBy"`
}
