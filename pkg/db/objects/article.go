package objects

import (
	"time"

	"gorm.io/gorm"
)

// Article 对应数据库表 articles
// 计数字段 LikeCount/SaveCount 只是读优化缓存，真实数据在 interactions 台账里
type Article struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	// Photographer 配图署名，可为空
	Photographer string `gorm:"type:varchar(255)" json:"photographer,omitempty"`

	// 栏目与作者都允许为空，删除时置 NULL
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	AuthorID   *uint     `gorm:"index" json:"author_id,omitempty"`

	PublishedAt time.Time `gorm:"index;autoCreateTime" json:"published_at"`

	// Urgent 首页加急位展示用，与通知无关
	Urgent bool `gorm:"default:false" json:"urgent"`

	// Notify 推送意图开关：false→true 的跳变才触发兴趣粉丝的通知扇出
	Notify bool `gorm:"default:false" json:"notify"`

	LikeCount uint `gorm:"default:0" json:"like_count"`
	SaveCount uint `gorm:"default:0" json:"save_count"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Article) TableName() string {
	return "articles"
}
