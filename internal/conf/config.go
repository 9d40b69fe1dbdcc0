package conf

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Mailer     MailerConfig     `mapstructure:"mailer"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Jobs       []JobConfig      `mapstructure:"jobs"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	// PageSize 通知收件箱每节的分页大小
	PageSize int `mapstructure:"pageSize"`
}

type DatabaseConfig struct {
	Dialect  string `mapstructure:"dialect"` // mysql / postgres
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"logLevel"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MailerConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type AuthConfig struct {
	// Secret JWT 签名密钥
	Secret string `mapstructure:"secret"`
	// TokenTTLHours 令牌有效期（小时）
	TokenTTLHours int `mapstructure:"tokenTTLHours"`
}

type ModerationConfig struct {
	// Lexicon 敏感词词库文件，留空则关闭内容审核
	Lexicon string `mapstructure:"lexicon"`
}

type JobConfig struct {
	Name   string         `mapstructure:"name"`
	Cron   string         `mapstructure:"cron"`
	Enable bool           `mapstructure:"enable"`
	Params map[string]any `mapstructure:"params"`
}

// LoadConfig 加载配置
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	// 展开 YAML 中的 ${VAR} 环境变量
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.Contains(val, "${") {
			v.Set(key, os.ExpandEnv(val))
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.Server.PageSize <= 0 {
		c.Server.PageSize = 5
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 72
	}
	return &c, nil
}
