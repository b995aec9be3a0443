// internal/models/product.go
package models

type Product struct {
	BaseModel
	PharmacyID           uint    `json:"pharmacy_id" gorm:"not null;index"`
	Name                 string  `json:"name" gorm:"size:255;not null"`
	Description          string  `json:"description,omitempty" gorm:"type:text"`
	Price                float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	RequiresPrescription bool    `json:"requires_prescription" gorm:"default:false"`
	Stock                int     `json:"stock" gorm:"default:0"`

	// Relationships
	Pharmacy User           `json:"pharmacy,omitempty" gorm:"foreignKey:PharmacyID"`
	Images   []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID"`
}

type ProductImage struct {
	BaseModel
	ProductID uint   `json:"product_id" gorm:"not null;index"`
	ImageURL  string `json:"image_url" gorm:"size:500;not null"`
	IsPrimary bool   `json:"is_primary" gorm:"default:false"`
}
