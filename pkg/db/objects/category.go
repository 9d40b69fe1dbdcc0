package objects

// Category 新闻栏目，文章、兴趣档案、兴趣积分都引用它
// 创建后视为不可变
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
