package db

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/iceymoss/echo-news/pkg/logger"
)

// Config 关系库连接配置，由 internal/conf 在启动时注入
type Config struct {
	Dialect  string // mysql / postgres
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	LogLevel string
}

var (
	sqlCfg  Config
	sqlConn *gorm.DB
	sqlMu   sync.RWMutex
)

// Init 注入连接配置，必须在 GetConn 之前调用
func Init(c Config) {
	sqlMu.Lock()
	sqlCfg = c
	sqlMu.Unlock()
}

// GetConn 获取数据库连接，懒加载并缓存
func GetConn() *gorm.DB {
	sqlMu.RLock()
	conn := sqlConn
	sqlMu.RUnlock()
	if conn != nil {
		return conn
	}

	sqlMu.Lock()
	defer sqlMu.Unlock()
	if sqlConn != nil {
		return sqlConn
	}

	var dialector gorm.Dialector
	switch sqlCfg.Dialect {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			sqlCfg.Host, sqlCfg.User, sqlCfg.Password, sqlCfg.Name, sqlCfg.Port)
		dialector = postgres.Open(dsn)
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			sqlCfg.User, sqlCfg.Password, sqlCfg.Host, sqlCfg.Port, sqlCfg.Name)
		dialector = mysql.Open(dsn)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLevel(sqlCfg.LogLevel)),
	})
	if err != nil {
		logger.Fatal("数据库连接失败", zap.String("dialect", sqlCfg.Dialect), zap.Error(err))
	}

	pool, poolErr := conn.DB()
	if poolErr != nil {
		logger.Error("获取连接池失败", zap.Error(poolErr))
	} else {
		pool.SetMaxOpenConns(30)
		pool.SetMaxIdleConns(15)
	}

	if sqlCfg.LogLevel == "debug" {
		conn = conn.Debug()
	}
	sqlConn = conn
	return sqlConn
}

func gormLevel(level string) gormLogger.LogLevel {
	switch level {
	case "debug", "info":
		return gormLogger.Info
	case "warning":
		return gormLogger.Warn
	default:
		return gormLogger.Error
	}
}
