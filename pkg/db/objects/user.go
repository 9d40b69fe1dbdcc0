package objects

import (
	"time"

	"gorm.io/gorm"
)

// User 门户注册用户
// 密码只存 bcrypt 哈希，明文不落库
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	FirstName string `gorm:"type:varchar(150)" json:"first_name"`

	// Password bcrypt 哈希
	Password string `gorm:"type:varchar(255);not null" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
