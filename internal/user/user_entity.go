package user

import "time"

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

type User struct {
	ID           string    `gorm:"column:id;type:varchar(64);primaryKey"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Name         string    `gorm:"column:name;type:varchar(255);not null"`
	EmployeeID   string    `gorm:"column:employee_id;type:varchar(64);uniqueIndex:uq_users_employee_id"`
	Department   string    `gorm:"column:department;type:varchar(120);not null;default:''"`
	Position     string    `gorm:"column:position;type:varchar(120);not null;default:''"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:'employee'"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
