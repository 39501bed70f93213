package leave

import (
	"time"

	"github.com/google/uuid"
)

// Leave stores a snapshot of the applicant taken when the application was
// submitted or last edited, so later edits to the employee record do not
// rewrite history.
type Leave struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	ApplicantID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ApplicantName       string    `gorm:"type:varchar(255);not null"`
	ApplicantAddress    string    `gorm:"type:varchar(200)"`
	ApplicantAge        *int
	ApplicantNationalID string `gorm:"column:applicant_national_id;type:varchar(16);not null;index"`
	ApplicantGender     string `gorm:"type:varchar(10)"`
	ApplicantStatus     string `gorm:"type:varchar(20)"`

	LeaveType     string    `gorm:"type:varchar(20);not null"`
	StartDate     time.Time `gorm:"type:date;not null"`
	EndDate       time.Time `gorm:"type:date;not null"`
	Reason        string    `gorm:"type:text;not null"`
	SubmittedDate time.Time `gorm:"type:date;not null"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RejectionReason *string    `gorm:"type:text"`
	DecidedBy       *uuid.UUID `gorm:"type:uuid"`
	DecidedAt       *time.Time

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Leave) TableName() string { return "leave_applications" }
