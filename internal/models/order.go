// internal/models/order.go
package models

type Order struct {
	BaseModel
	UserID          uint        `json:"user_id" gorm:"not null;index"`
	PharmacyID      uint        `json:"pharmacy_id" gorm:"not null;index"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'Placed';index"`
	Total           float64     `json:"total" gorm:"type:decimal(10,2);not null"`
	DeliveryAddress string      `json:"delivery_address,omitempty" gorm:"size:500"`
	Latitude        *float64    `json:"latitude,omitempty"`
	Longitude       *float64    `json:"longitude,omitempty"`

	// Relationships
	Customer      User           `json:"customer,omitempty" gorm:"foreignKey:UserID"`
	Pharmacy      User           `json:"pharmacy,omitempty" gorm:"foreignKey:PharmacyID"`
	Items         []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Prescriptions []Prescription `json:"prescriptions,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots the product price at order-creation time. Subtotal is
// never recomputed when the product price changes later.
type OrderItem struct {
	BaseModel
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null;index"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Subtotal  float64 `json:"subtotal" gorm:"type:decimal(10,2);not null"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
