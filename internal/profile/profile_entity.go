package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile shares its ID with the identity it describes. Role is nullable:
// a profile without a role is denied every page.
type Profile struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Email      string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_profiles_email"`
	FullName   *string   `gorm:"column:full_name;type:varchar(255)"`
	Role       *string   `gorm:"column:role;type:varchar(20);index"`
	NationalID *string   `gorm:"column:national_id;type:varchar(16);uniqueIndex:uq_profiles_national_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Profile) TableName() string { return "profiles" }
