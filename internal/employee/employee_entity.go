package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"

	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusOnLeave  = "On Leave"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"uniqueIndex:uq_employee_number"`
	FullName       string
	Gender         string `gorm:"type:varchar(10)"`
	Department     string
	Designation    string
	JoinDate       time.Time `gorm:"type:date"`
	Status         string    `gorm:"type:varchar(20);default:'Active'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
