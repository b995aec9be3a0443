// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Base model with common fields. Primary keys are database-generated,
// which keeps concurrent creates from colliding.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONB stores a JSON document (jsonb on PostgreSQL, text on SQLite).
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums

type Role string

const (
	RoleCustomer Role = "Customer"
	RolePharmacy Role = "Pharmacy"
	RoleAdmin    Role = "Admin"
)

// ValidRole reports whether r is one of the known roles. Role checks go
// through the typed constants so unknown role strings are never silently
// accepted.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RolePharmacy, RoleAdmin:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "Placed"
	OrderStatusAccepted  OrderStatus = "Accepted"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusRejected  OrderStatus = "Rejected"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPlaced, OrderStatusAccepted, OrderStatusReady,
		OrderStatusDelivered, OrderStatusRejected:
		return true
	}
	return false
}

type PrescriptionStatus string

const (
	PrescriptionStatusPending  PrescriptionStatus = "Pending"
	PrescriptionStatusVerified PrescriptionStatus = "Verified"
	PrescriptionStatusRejected PrescriptionStatus = "Rejected"
)

func ValidPrescriptionStatus(s PrescriptionStatus) bool {
	switch s {
	case PrescriptionStatusPending, PrescriptionStatusVerified, PrescriptionStatusRejected:
		return true
	}
	return false
}
