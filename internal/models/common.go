// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Enums
type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "super-admin"
)

type CategoryName string

const (
	CategoryElectronics CategoryName = "Electronics"
	CategoryAccessories CategoryName = "Accessories"
	CategoryClothing    CategoryName = "Clothing"
	CategoryFood        CategoryName = "Food"
	CategoryHome        CategoryName = "Home"
	CategorySports      CategoryName = "Sports"
)

// Categories returns the fixed category set. Categories are labels used for
// scoping, not independently managed resources.
func Categories() []CategoryName {
	return []CategoryName{
		CategoryElectronics,
		CategoryAccessories,
		CategoryClothing,
		CategoryFood,
		CategoryHome,
		CategorySports,
	}
}

func (c CategoryName) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// StringList is a JSON-encoded string slice column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// CategoryList is a JSON-encoded category set column.
type CategoryList []CategoryName

func (l CategoryList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]CategoryName{})
	}
	return json.Marshal(l)
}

func (l *CategoryList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for CategoryList", value)
	}
}

func (l CategoryList) Contains(c CategoryName) bool {
	for _, assigned := range l {
		if assigned == c {
			return true
		}
	}
	return false
}
