package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusSingle   = "single"
	StatusMarried  = "married"
	StatusDivorced = "divorced"
	StatusWidowed  = "widowed"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Employee is a person record managed on the users page. Status is the
// marital status, not an account state.
type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Address    string    `gorm:"type:varchar(200);not null"`
	Age        *int
	NationalID string    `gorm:"column:national_id;type:varchar(16);not null;uniqueIndex:uq_employees_national_id"`
	Status     string    `gorm:"type:varchar(20);not null;index"`
	Gender     string    `gorm:"type:varchar(10);not null;index"`
	Email      *string   `gorm:"type:varchar(255)"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}
