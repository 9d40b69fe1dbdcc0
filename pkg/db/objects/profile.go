package objects

import "time"

// Profile 用户兴趣档案，一人一份，首次访问时隐式创建
// Categories 即推荐和通知定向的依据
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	Bio string `gorm:"type:text" json:"bio"`

	Categories []Category `gorm:"many2many:profile_categories" json:"categories"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

// CategoryIDs 返回兴趣栏目 ID 集合
func (p *Profile) CategoryIDs() []uint {
	ids := make([]uint, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
