// internal/services/admin_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/albanrr9/PharmacyOnline/internal/models"
	"github.com/albanrr9/PharmacyOnline/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalUsers           int64   `json:"total_users"`
	TotalCustomers       int64   `json:"total_customers"`
	TotalPharmacies      int64   `json:"total_pharmacies"`
	TotalProducts        int64   `json:"total_products"`
	TotalOrders          int64   `json:"total_orders"`
	PlacedOrders         int64   `json:"placed_orders"`
	DeliveredOrders      int64   `json:"delivered_orders"`
	RejectedOrders       int64   `json:"rejected_orders"`
	TotalRevenue         float64 `json:"total_revenue"`
	PendingPrescriptions int64   `json:"pending_prescriptions"`
}

type AdminUserFilter struct {
	utils.PaginationParams
	Role *models.Role `json:"role,omitempty"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetDashboardStats aggregates the operational numbers shown on the admin
// dashboard. Revenue counts delivered orders only.
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}

	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&stats.TotalCustomers)
	s.db.Model(&models.User{}).Where("role = ?", models.RolePharmacy).Count(&stats.TotalPharmacies)

	s.db.Model(&models.Product{}).Count(&stats.TotalProducts)

	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPlaced).Count(&stats.PlacedOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).Count(&stats.DeliveredOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusRejected).Count(&stats.RejectedOrders)

	s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(total), 0)").Scan(&stats.TotalRevenue)

	s.db.Model(&models.Prescription{}).
		Where("status = ?", models.PrescriptionStatusPending).
		Count(&stats.PendingPrescriptions)

	return stats, nil
}

func (s *AdminService) GetUsers(filter AdminUserFilter) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}

	if filter.Search != "" {
		searchTerm := "%" + utils.EscapeLike(filter.Search) + "%"
		query = query.Where(`full_name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\'`, searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	allowedSortFields := []string{"created_at", "full_name", "email", "role"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}
