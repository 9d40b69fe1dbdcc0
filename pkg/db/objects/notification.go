package objects

import "time"

// Notification 用户站内通知，只由通知扇出创建
// 文章被删除后 ArticleID 置 NULL，记录保留
type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Headline string `gorm:"type:varchar(255);not null" json:"headline"`

	ArticleID *uint    `gorm:"index" json:"article_id,omitempty"`
	Article   *Article `gorm:"constraint:OnDelete:SET NULL" json:"article,omitempty"`

	// 列名用 is_read，避开 MySQL 的 READ 保留字
	Read bool `gorm:"column:is_read;default:false;index" json:"read"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
