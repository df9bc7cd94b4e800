package models

import (
	"gorm.io/gorm"
)

// User is an administrative account. The public booking surface is
// anonymous; only staff log in.
type User struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex;size:254"`
	Password  string `json:"-"`
	Role      string `json:"role" gorm:"type:varchar(20);default:admin;index"` // admin, super_admin
}
