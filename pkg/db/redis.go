package db

import (
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

// RedisConfig redis 连接配置，承载重置验证码和未读角标缓存
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

var (
	redisCfg  RedisConfig
	redisConn *redis.Client
	redisMu   sync.RWMutex
)

// InitRedis 注入 redis 配置
func InitRedis(c RedisConfig) {
	redisMu.Lock()
	redisCfg = c
	redisMu.Unlock()
}

// GetRedis 获取 redis 客户端，懒加载并缓存
func GetRedis() *redis.Client {
	redisMu.RLock()
	rdb := redisConn
	redisMu.RUnlock()
	if rdb != nil {
		return rdb
	}

	redisMu.Lock()
	defer redisMu.Unlock()
	if redisConn == nil {
		redisConn = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", redisCfg.Host, redisCfg.Port),
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})
	}
	return redisConn
}
