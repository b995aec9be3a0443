// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/albanrr9/PharmacyOnline/internal/models"
	"github.com/albanrr9/PharmacyOnline/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name                 string  `json:"name" validate:"required,min=2,max=255"`
	Description          string  `json:"description,omitempty"`
	Price                float64 `json:"price" validate:"gte=0"`
	RequiresPrescription bool    `json:"requires_prescription"`
	Stock                int     `json:"stock" validate:"gte=0"`
	PharmacyID           uint    `json:"pharmacy_id,omitempty"`
}

// UpdateProductRequest uses pointer fields so an omitted field keeps its old
// value while a present zero value still applies.
type UpdateProductRequest struct {
	Name                 *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description          *string  `json:"description,omitempty"`
	Price                *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	RequiresPrescription *bool    `json:"requires_prescription,omitempty"`
	Stock                *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	PharmacyID *uint `json:"pharmacy_id,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Images")

	if params.PharmacyID != nil {
		query = query.Where("pharmacy_id = ?", *params.PharmacyID)
	}

	// Case-insensitive substring match over name and description. A product
	// without a description still matches on its name, and LIKE wildcards in
	// the term match literally.
	if params.Search != "" {
		searchTerm := "%" + utils.EscapeLike(strings.ToLower(params.Search)) + "%"
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "stock"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Images").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(callerID uint, callerRole models.Role, req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// A pharmacy always owns what it creates; an admin must name the owner.
	pharmacyID := callerID
	if callerRole == models.RoleAdmin {
		if req.PharmacyID == 0 {
			return nil, errors.New("pharmacy_id is required when creating a product as admin")
		}
		var pharmacy models.User
		if err := s.db.First(&pharmacy, req.PharmacyID).Error; err != nil || pharmacy.Role != models.RolePharmacy {
			return nil, errors.New("pharmacy not found")
		}
		pharmacyID = req.PharmacyID
	}

	product := &models.Product{
		PharmacyID:           pharmacyID,
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		RequiresPrescription: req.RequiresPrescription,
		Stock:                req.Stock,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(id uint, callerID uint, callerRole models.Role, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if callerRole == models.RolePharmacy && product.PharmacyID != callerID {
		return nil, errors.New("unauthorized to update this product")
	}

	// Field-level merge: absent field keeps the old value
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.RequiresPrescription != nil {
		updates["requires_prescription"] = *req.RequiresPrescription
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	s.db.Preload("Images").First(&product, id)
	return &product, nil
}

// DeleteProduct removes the row outright and returns the deleted product with
// its images so the caller can clean up stored files. Order items referencing
// the product keep their price snapshots.
func (s *ProductService) DeleteProduct(id uint, callerID uint, callerRole models.Role) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Images").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if callerRole == models.RolePharmacy && product.PharmacyID != callerID {
		return nil, errors.New("unauthorized to delete this product")
	}

	if err := s.hardDelete(&product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (s *ProductService) hardDelete(product *models.Product) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}
		if err := tx.Delete(product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

func (s *ProductService) AddProductImages(productID uint, callerID uint, callerRole models.Role, urls []string) ([]models.ProductImage, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if callerRole == models.RolePharmacy && product.PharmacyID != callerID {
		return nil, errors.New("unauthorized to update this product")
	}

	var existing int64
	s.db.Model(&models.ProductImage{}).Where("product_id = ?", productID).Count(&existing)

	images := make([]models.ProductImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, models.ProductImage{
			ProductID: productID,
			ImageURL:  url,
			IsPrimary: existing == 0 && i == 0,
		})
	}

	if err := s.db.Create(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to save product images: %w", err)
	}

	return images, nil
}
