package utils

import (
	"time"
)

var (
	// BrazilLocation 巴西利亚时区 (UTC-3)
	BrazilLocation *time.Location
)

func init() {
	var err error
	BrazilLocation, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// 加载失败时退回固定偏移 UTC-3
		BrazilLocation = time.FixedZone("BRT", -3*60*60)
	}
}

// NowInBrazil 获取巴西时区的当前时间
func NowInBrazil() time.Time {
	return time.Now().In(BrazilLocation)
}

// FormatPublishDate 文章发布日期的展示格式 dd/mm/yyyy
func FormatPublishDate(t time.Time) string {
	return t.In(BrazilLocation).Format("02/01/2006")
}
