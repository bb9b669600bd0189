// internal/models/product.go
package models

type Product struct {
	BaseModel
	Name        string       `json:"name" gorm:"size:100;not null"`
	Description string       `json:"description" gorm:"type:text"`
	Price       float64      `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int          `json:"stock" gorm:"not null;default:0"`
	Category    CategoryName `json:"category" gorm:"size:50;not null;index"`
	Images      StringList   `json:"images" gorm:"type:jsonb"`

	// Relationships
	Sales []Sale `json:"sales,omitempty" gorm:"foreignKey:ProductID"`
}
