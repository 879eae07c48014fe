package domain

import (
	"regexp"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Email     string       `gorm:"type:text;not null;uniqueIndex:ux_customers_email" json:"email"`
	Phone     *string      `gorm:"type:text" json:"phone,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Customer) TableName() string { return "customers" }

// Accepted phone forms: "+" followed by 1-15 digits, or a grouped local
// number like 123-456-7890 (hyphen or space separators).
var phonePattern = regexp.MustCompile(`^(\+\d{1,15}|\d{1,4}[-\s]\d{3}[-\s]\d{3,4})$`)

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
