package objects

// InterestHistory 用户对某栏目的兴趣积分，(user, category) 唯一
// 本服务只读，积分由外部离线流程维护，作为推荐的兜底依据
type InterestHistory struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_user_category" json:"user_id"`
	CategoryID uint `gorm:"not null;uniqueIndex:idx_user_category" json:"category_id"`
	Score      uint `gorm:"default:0" json:"score"`
}

func (InterestHistory) TableName() string {
	return "interest_histories"
}
