package objects

import "time"

// 互动类型，台账的 kind 只允许这两个值
const (
	InteractionLike = "LIKE"
	InteractionSave = "SAVE"
)

// ValidInteractionKind 校验互动类型
func ValidInteractionKind(kind string) bool {
	return kind == InteractionLike || kind == InteractionSave
}

// Interaction 点赞/收藏台账，(user, article, kind) 唯一
// LIKE 和 SAVE 互不影响，可以同时存在
type Interaction struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_article_kind" json:"user_id"`
	ArticleID uint   `gorm:"not null;uniqueIndex:idx_user_article_kind" json:"article_id"`
	Kind      string `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_article_kind" json:"kind"`

	Article *Article `json:"article,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Interaction) TableName() string {
	return "interactions"
}
