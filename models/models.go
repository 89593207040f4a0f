package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin represents a back-office staff account
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	Products    []Product `json:"products,omitempty"`
	Blocked     bool      `json:"blocked" gorm:"default:false"`
}

// Customer represents a shop customer. Customers do not log in;
// they are records managed by staff and targets for broadcasts.
type Customer struct {
	gorm.Model
	Name    string `json:"name"`
	Phone   string `json:"phone" gorm:"uniqueIndex;not null"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Blocked bool   `json:"blocked" gorm:"default:false"`
}
