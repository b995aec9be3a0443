// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/albanrr9/PharmacyOnline/internal/models"
	"github.com/albanrr9/PharmacyOnline/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	PharmacyID      uint               `json:"pharmacy_id" validate:"required"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string             `json:"delivery_address,omitempty" validate:"omitempty,max=500"`
	Latitude        *float64           `json:"latitude,omitempty"`
	Longitude       *float64           `json:"longitude,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,order_status"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// ListOrders applies the row-level access policy: customers see their own
// orders, pharmacies the orders addressed to them, admins everything.
func (s *OrderService) ListOrders(callerID uint, callerRole models.Role) ([]models.Order, error) {
	query := s.db.Model(&models.Order{}).
		Preload("Items").Preload("Items.Product").
		Order("created_at DESC")

	switch callerRole {
	case models.RoleCustomer:
		query = query.Where("user_id = ?", callerID)
	case models.RolePharmacy:
		query = query.Where("pharmacy_id = ?", callerID)
	case models.RoleAdmin:
		// no filter
	default:
		return nil, errors.New("unknown role")
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, nil
}

// GetOrder returns the order only when it falls inside the caller's row
// scope; rows outside the scope read as not found.
func (s *OrderService) GetOrder(id uint, callerID uint, callerRole models.Role) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").Preload("Items.Product").Preload("Prescriptions").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	switch callerRole {
	case models.RoleCustomer:
		if order.UserID != callerID {
			return nil, errors.New("order not found")
		}
	case models.RolePharmacy:
		if order.PharmacyID != callerID {
			return nil, errors.New("order not found")
		}
	}

	return &order, nil
}

// CreateOrder snapshots product prices into line items. Lines naming an
// unknown product id are skipped without error; the total covers resolved
// lines only and is never recomputed afterwards. Stock is informational and
// is not decremented here.
func (s *OrderService) CreateOrder(customerID uint, req *CreateOrderRequest) (*models.Order, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var pharmacy models.User
	if err := s.db.First(&pharmacy, req.PharmacyID).Error; err != nil || pharmacy.Role != models.RolePharmacy {
		return nil, errors.New("pharmacy not found")
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var total float64
		var items []models.OrderItem

		for _, line := range req.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Unknown product: skip the line
					continue
				}
				return fmt.Errorf("database error: %w", err)
			}

			subtotal := product.Price * float64(line.Quantity)
			total += subtotal
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Subtotal:  subtotal,
			})
		}

		if len(items) == 0 {
			return errors.New("no valid items in order")
		}

		order = &models.Order{
			UserID:          customerID,
			PharmacyID:      req.PharmacyID,
			Status:          models.OrderStatusPlaced,
			Total:           total,
			DeliveryAddress: req.DeliveryAddress,
			Latitude:        req.Latitude,
			Longitude:       req.Longitude,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.db.Preload("Items").Preload("Items.Product").First(order, order.ID)
	return order, nil
}

// UpdateOrderStatus sets the order to any known status. The workflow is
// deliberately unrestricted: a pharmacy can reject at any point before
// delivery, and no linear-order rule is enforced. A pharmacy may only touch
// orders addressed to it; the total stays untouched.
func (s *OrderService) UpdateOrderStatus(id uint, callerID uint, callerRole models.Role, req *UpdateOrderStatusRequest) (*models.Order, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if callerRole == models.RolePharmacy && order.PharmacyID != callerID {
		return nil, errors.New("unauthorized to update this order")
	}

	if err := s.db.Model(&order).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.db.Preload("Items").Preload("Items.Product").First(&order, id)
	return &order, nil
}
