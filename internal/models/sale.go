// internal/models/sale.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Sale struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Revenue   float64   `json:"revenue" gorm:"type:decimal(10,2);not null"`
	Date      time.Time `json:"date" gorm:"not null;index"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
