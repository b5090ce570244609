package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Resources ResourcesConfig `mapstructure:"resources"`
	Vote      VoteConfig      `mapstructure:"vote"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Redis  RedisConfig  `mapstructure:"redis"`
	Sqlite SqliteConfig `mapstructure:"sqlite"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SqliteConfig 定义了SQLite数据库文件的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// ResourcesConfig 定义了启动时加载的静态资源的位置
type ResourcesConfig struct {
	// LexiconPath 是布鲁姆动词词表CSV文件的路径 (两列: verb, bloom_level)
	LexiconPath string `mapstructure:"lexiconPath"`
	// ClassifierModelPath 是离线训练导出的分类器模型权重文件的路径
	ClassifierModelPath string `mapstructure:"classifierModelPath"`
}

// VoteConfig 定义了投票与共识相关的配置
type VoteConfig struct {
	// ApprovalThreshold 是一个(word, level)记录从“建议”晋升为“已批准”所需的票数
	ApprovalThreshold int `mapstructure:"approvalThreshold"`
	// IPDailyLimit 是单个IP在24小时窗口内允许提交的最大投票数，0表示不限制
	IPDailyLimit int `mapstructure:"ipDailyLimit"`
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 3. 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. 兜底默认值，保证缺省配置下也能跑通核心流程
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.sqlite.path", "bloom_indicator.db")
	v.SetDefault("resources.lexiconPath", "resources/bloom_verbs.csv")
	v.SetDefault("resources.classifierModelPath", "resources/bloom_model.json")
	v.SetDefault("vote.approvalThreshold", 10)
	v.SetDefault("vote.ipDailyLimit", 200)

	// 5. 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 7. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}
