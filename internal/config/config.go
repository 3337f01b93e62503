package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	HTTP          HTTPConfig          `mapstructure:"http"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Cache         CacheConfig         `mapstructure:"cache"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Browse        BrowseConfig        `mapstructure:"browse"`
	Log           LogConfig           `mapstructure:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Mode    string `mapstructure:"mode"`
	Port    int    `mapstructure:"port"`
}

// HTTPConfig HTTP 层配置
type HTTPConfig struct {
	AllowedOrigins    []string `mapstructure:"allowed_origins"`
	FavoriteRateLimit int      `mapstructure:"favorite_rate_limit"` // 每分钟每个用户的收藏写操作次数
	ShutdownTimeout   int      `mapstructure:"shutdown_timeout"`    // 秒
}

// ShutdownDuration 返回优雅退出等待时间
func (h *HTTPConfig) ShutdownDuration() time.Duration {
	return time.Duration(h.ShutdownTimeout) * time.Second
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
	SlowThreshold   int    `mapstructure:"slow_threshold"`    // 毫秒
}

// DSN 返回PostgreSQL连接字符串
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// SlowThresholdDuration 返回慢查询阈值
func (d *DatabaseConfig) SlowThresholdDuration() time.Duration {
	return time.Duration(d.SlowThreshold) * time.Millisecond
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr 返回Redis地址
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CacheConfig 缓存配置
type CacheConfig struct {
	CategoryTTL int `mapstructure:"category_ttl"` // 秒
}

// CategoryTTLDuration 返回分类列表缓存时间
func (c *CacheConfig) CategoryTTLDuration() time.Duration {
	return time.Duration(c.CategoryTTL) * time.Second
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	PublicEndpoint  string `mapstructure:"public_endpoint"`
	AccessKey       string `mapstructure:"access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	ThumbnailBucket string `mapstructure:"thumbnail_bucket"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
	GroupID string            `mapstructure:"group_id"`
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Hosts   []string          `mapstructure:"hosts"`
	Index   map[string]string `mapstructure:"index"`
}

// JWTConfig JWT配置（仅用于校验外部身份服务签发的令牌）
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// BrowseConfig 浏览页相关策略
type BrowseConfig struct {
	DefaultUserID          string `mapstructure:"default_user_id"`
	PreferredFeaturedTitle string `mapstructure:"preferred_featured_title"`
	RelatedLimit           int    `mapstructure:"related_limit"`
	NewReleasesLimit       int    `mapstructure:"new_releases_limit"`
	PopularLimit           int    `mapstructure:"popular_limit"`
	FeaturedLimit          int    `mapstructure:"featured_limit"`
	TopLimit               int    `mapstructure:"top_limit"`
	PerSubjectLimit        int    `mapstructure:"per_subject_limit"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// 全局配置实例
var globalConfig *Config

// setDefaults 设置默认值，配置文件和环境变量可覆盖
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "edufleex")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.port", 8000)

	v.SetDefault("http.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("http.favorite_rate_limit", 120)
	v.SetDefault("http.shutdown_timeout", 10)

	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("database.slow_threshold", 200)

	v.SetDefault("cache.category_ttl", 600)
	v.SetDefault("minio.thumbnail_bucket", "thumbnails")
	v.SetDefault("kafka.group_id", "edufleex-view-counter")
	v.SetDefault("kafka.topics.video_viewed", "video_viewed")
	v.SetDefault("elasticsearch.index.videos", "videos")

	v.SetDefault("browse.default_user_id", "default-user")
	v.SetDefault("browse.preferred_featured_title", "Algebra")
	v.SetDefault("browse.related_limit", 12)
	v.SetDefault("browse.new_releases_limit", 20)
	v.SetDefault("browse.popular_limit", 20)
	v.SetDefault("browse.featured_limit", 10)
	v.SetDefault("browse.top_limit", 10)
	v.SetDefault("browse.per_subject_limit", 6)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	// 本地开发时允许使用 .env，文件不存在不算错误
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// 设置配置文件路径
	v.SetConfigFile(configPath)

	// 设置配置文件类型
	v.SetConfigType("yaml")

	// 读取环境变量，例如 DATABASE_HOST 覆盖 database.host
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 解析配置到结构体
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 保存到全局变量
	globalConfig = &cfg

	return &cfg, nil
}

// Validate 校验必填配置
func (c *Config) Validate() error {
	if c.App.Port <= 0 {
		return fmt.Errorf("app.port must be positive")
	}
	if c.Browse.DefaultUserID == "" {
		return fmt.Errorf("browse.default_user_id is required")
	}
	limits := map[string]int{
		"browse.related_limit":      c.Browse.RelatedLimit,
		"browse.new_releases_limit": c.Browse.NewReleasesLimit,
		"browse.popular_limit":      c.Browse.PopularLimit,
		"browse.featured_limit":     c.Browse.FeaturedLimit,
		"browse.top_limit":          c.Browse.TopLimit,
		"browse.per_subject_limit":  c.Browse.PerSubjectLimit,
	}
	for name, n := range limits {
		if n < 1 {
			return fmt.Errorf("%s must be at least 1", name)
		}
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}
	if c.Elasticsearch.Enabled && len(c.Elasticsearch.Hosts) == 0 {
		return fmt.Errorf("elasticsearch.hosts is required when elasticsearch is enabled")
	}
	if c.MinIO.Enabled && c.MinIO.Endpoint == "" {
		return fmt.Errorf("minio.endpoint is required when minio is enabled")
	}
	return nil
}

// Get 获取全局配置
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded, please call Load() first")
	}
	return globalConfig
}

// GetApp 获取应用配置
func GetApp() *AppConfig {
	return &Get().App
}

// GetBrowse 获取浏览策略配置
func GetBrowse() *BrowseConfig {
	return &Get().Browse
}
