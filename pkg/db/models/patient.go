package models

import "time"

// Patient belongs to the care-service line of the business.
type Patient struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"column:name;not null" json:"name"`
	Phone       string     `gorm:"column:phone" json:"phone"`
	Email       string     `gorm:"column:email" json:"email"`
	BornDate    *time.Time `gorm:"column:born_date" json:"born_date,omitempty"`
	Responsible string     `gorm:"column:responsible" json:"responsible"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName maps Patient onto the patients table.
func (Patient) TableName() string {
	return "patients"
}
