package models

type Status struct {
	ID          uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// TableName keeps the singular table name used by existing databases.
func (Status) TableName() string {
	return "status"
}
