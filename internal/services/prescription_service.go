// internal/services/prescription_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/albanrr9/PharmacyOnline/internal/models"
	"github.com/albanrr9/PharmacyOnline/internal/utils"
)

type PrescriptionService struct {
	db *gorm.DB
}

type VerifyPrescriptionRequest struct {
	Status models.PrescriptionStatus `json:"status" validate:"required,oneof=Verified Rejected"`
}

func NewPrescriptionService(db *gorm.DB) *PrescriptionService {
	return &PrescriptionService{db: db}
}

// AttachPrescription stores an uploaded prescription image against the
// customer's own order. Verification starts Pending.
func (s *PrescriptionService) AttachPrescription(orderID uint, customerID uint, imageURL string) (*models.Prescription, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.UserID != customerID {
		return nil, errors.New("order not found")
	}

	prescription := &models.Prescription{
		OrderID:  orderID,
		ImageURL: imageURL,
		Status:   models.PrescriptionStatusPending,
	}

	if err := s.db.Create(prescription).Error; err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	return prescription, nil
}

// VerifyPrescription moves a pending prescription to Verified or Rejected
// and records which admin decided.
func (s *PrescriptionService) VerifyPrescription(id uint, adminID uint, req *VerifyPrescriptionRequest) (*models.Prescription, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var prescription models.Prescription
	if err := s.db.First(&prescription, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("prescription not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if prescription.Status != models.PrescriptionStatusPending {
		return nil, errors.New("prescription has already been reviewed")
	}

	updates := map[string]interface{}{
		"status":      req.Status,
		"verified_by": adminID,
	}
	if err := s.db.Model(&prescription).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update prescription: %w", err)
	}

	s.db.First(&prescription, id)
	return &prescription, nil
}

// GetPrescription is visible to the owning customer, the target pharmacy
// and admins; anyone else reads not found.
func (s *PrescriptionService) GetPrescription(id uint, callerID uint, callerRole models.Role) (*models.Prescription, error) {
	var prescription models.Prescription
	if err := s.db.Preload("Order").First(&prescription, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("prescription not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	switch callerRole {
	case models.RoleCustomer:
		if prescription.Order.UserID != callerID {
			return nil, errors.New("prescription not found")
		}
	case models.RolePharmacy:
		if prescription.Order.PharmacyID != callerID {
			return nil, errors.New("prescription not found")
		}
	}

	return &prescription, nil
}
