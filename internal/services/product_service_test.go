// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albanrr9/PharmacyOnline/internal/models"
	"github.com/albanrr9/PharmacyOnline/internal/utils"
)

func TestSearchProductsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	pharmacy := createTestUser(t, db, "MediCare", "medicare@pharmacy.com", models.RolePharmacy)
	createTestProduct(t, db, pharmacy.ID, "Paracetamol 500mg", 5.99, 100)
	createTestProduct(t, db, pharmacy.ID, "Ibuprofen 400mg", 7.50, 75)

	for _, term := range []string{"paracetamol", "PARACETAMOL", "Para"} {
		products, total, err := service.SearchProducts(ProductSearchParams{
			PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Search: term},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total, "search %q", term)
		require.Len(t, products, 1)
		assert.Equal(t, "Paracetamol 500mg", products[0].Name)
	}

	_, total, err := service.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Search: "aspirin"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestSearchProductsByPharmacy(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	first := createTestUser(t, db, "First Pharmacy", "first@pharmacy.com", models.RolePharmacy)
	second := createTestUser(t, db, "Second Pharmacy", "second@pharmacy.com", models.RolePharmacy)
	createTestProduct(t, db, first.ID, "Paracetamol 500mg", 5.99, 100)
	createTestProduct(t, db, second.ID, "Ibuprofen 400mg", 7.50, 75)

	products, total, err := service.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20},
		PharmacyID:       &first.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, first.ID, products[0].PharmacyID)
}

func TestCreateProductAsPharmacy(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	pharmacy := createTestUser(t, db, "MediCare", "medicare@pharmacy.com", models.RolePharmacy)

	product, err := service.CreateProduct(pharmacy.ID, models.RolePharmacy, &CreateProductRequest{
		Name:  "Amoxicillin 250mg",
		Price: 12.99,
		Stock: 50,
	})
	require.NoError(t, err)
	// A pharmacy always owns what it creates, even if the request names
	// someone else
	assert.Equal(t, pharmacy.ID, product.PharmacyID)
}

func TestCreateProductAsAdminRequiresPharmacy(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	admin := createTestUser(t, db, "Admin", "admin@pharmacy.com", models.RoleAdmin)
	pharmacy := createTestUser(t, db, "MediCare", "medicare@pharmacy.com", models.RolePharmacy)
	customer := createTestUser(t, db, "John", "john@example.com", models.RoleCustomer)

	_, err := service.CreateProduct(admin.ID, models.RoleAdmin, &CreateProductRequest{
		Name:  "Paracetamol 500mg",
		Price: 5.99,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pharmacy_id is required")

	// A customer account is not a valid product owner
	_, err = service.CreateProduct(admin.ID, models.RoleAdmin, &CreateProductRequest{
		Name:       "Paracetamol 500mg",
		Price:      5.99,
		PharmacyID: customer.ID,
	})
	assert.EqualError(t, err, "pharmacy not found")

	product, err := service.CreateProduct(admin.ID, models.RoleAdmin, &CreateProductRequest{
		Name:       "Paracetamol 500mg",
		Price:      5.99,
		PharmacyID: pharmacy.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, pharmacy.ID, product.PharmacyID)
}

func TestUpdateProductMergesFields(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	pharmacy := createTestUser(t, db, "MediCare", "medicare@pharmacy.com", models.RolePharmacy)
	product := createTestProduct(t, db, pharmacy.ID, "Paracetamol 500mg", 5.99, 100)

	newPrice := 6.49
	zeroStock := 0
	updated, err := service.UpdateProduct(product.ID, pharmacy.ID, models.RolePharmacy, &UpdateProductRequest{
		Price: &newPrice,
		Stock: &zeroStock,
	})
	require.NoError(t, err)

	// Omitted fields keep their old value, a present zero still applies
	assert.Equal(t, "Paracetamol 500mg", updated.Name)
	assert.InDelta(t, 6.49, updated.Price, 0.001)
	assert.Equal(t, 0, updated.Stock)
}

func TestUpdateProductOwnership(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	owner := createTestUser(t, db, "Owner Pharmacy", "owner@pharmacy.com", models.RolePharmacy)
	other := createTestUser(t, db, "Other Pharmacy", "other@pharmacy.com", models.RolePharmacy)
	product := createTestProduct(t, db, owner.ID, "Paracetamol 500mg", 5.99, 100)

	name := "Hijacked"
	_, err := service.UpdateProduct(product.ID, other.ID, models.RolePharmacy, &UpdateProductRequest{
		Name: &name,
	})
	assert.EqualError(t, err, "unauthorized to update this product")

	// Admins bypass the ownership check
	admin := createTestUser(t, db, "Admin", "admin@pharmacy.com", models.RoleAdmin)
	adminName := "Paracetamol 500mg (updated)"
	updated, err := service.UpdateProduct(product.ID, admin.ID, models.RoleAdmin, &UpdateProductRequest{
		Name: &adminName,
	})
	require.NoError(t, err)
	assert.Equal(t, adminName, updated.Name)
}

func TestDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	pharmacy := createTestUser(t, db, "MediCare", "medicare@pharmacy.com", models.RolePharmacy)
	other := createTestUser(t, db, "Other Pharmacy", "other@pharmacy.com", models.RolePharmacy)
	product := createTestProduct(t, db, pharmacy.ID, "Paracetamol 500mg", 5.99, 100)

	require.NoError(t, db.Create(&models.ProductImage{ProductID: product.ID, ImageURL: "http://example.com/1.jpg"}).Error)

	_, err := service.DeleteProduct(product.ID, other.ID, models.RolePharmacy)
	assert.EqualError(t, err, "unauthorized to delete this product")

	deleted, err := service.DeleteProduct(product.ID, pharmacy.ID, models.RolePharmacy)
	require.NoError(t, err)
	// The images come back with the deleted row so stored files can be
	// cleaned up
	assert.Len(t, deleted.Images, 1)

	_, err = service.GetProduct(product.ID)
	assert.EqualError(t, err, "product not found")

	var imageCount int64
	db.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&imageCount)
	assert.Equal(t, int64(0), imageCount)
}

func TestDeleteProductUnknownID(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	pharmacy := createTestUser(t, db, "MediCare", "medicare@pharmacy.com", models.RolePharmacy)

	_, err := service.DeleteProduct(9999, pharmacy.ID, models.RolePharmacy)
	assert.EqualError(t, err, "product not found")
}

func TestSearchProductsLiteralWildcards(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	pharmacy := createTestUser(t, db, "MediCare", "medicare@pharmacy.com", models.RolePharmacy)
	createTestProduct(t, db, pharmacy.ID, "100% Pure Vitamin C", 9.99, 40)
	createTestProduct(t, db, pharmacy.ID, "Paracetamol 500mg", 5.99, 100)

	// LIKE metacharacters in the term match literally instead of as wildcards
	products, total, err := service.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Search: "100%"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "100% Pure Vitamin C", products[0].Name)

	// A bare "%" is a literal character, not match-everything
	_, total, err = service.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Search: "%"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = service.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Search: "_aracetamol"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestAddProductImagesPrimaryFlag(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	pharmacy := createTestUser(t, db, "MediCare", "medicare@pharmacy.com", models.RolePharmacy)
	product := createTestProduct(t, db, pharmacy.ID, "Paracetamol 500mg", 5.99, 100)

	images, err := service.AddProductImages(product.ID, pharmacy.ID, models.RolePharmacy, []string{
		"http://example.com/1.jpg",
		"http://example.com/2.jpg",
	})
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.True(t, images[0].IsPrimary)
	assert.False(t, images[1].IsPrimary)

	// Later uploads never steal the primary flag
	more, err := service.AddProductImages(product.ID, pharmacy.ID, models.RolePharmacy, []string{
		"http://example.com/3.jpg",
	})
	require.NoError(t, err)
	require.Len(t, more, 1)
	assert.False(t, more[0].IsPrimary)
}
