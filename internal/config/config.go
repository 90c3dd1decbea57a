package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis_service"`
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	CORS      CORSConfig      `mapstructure:"cors"`
	ImageAPI  ImageAPIConfig  `mapstructure:"image_service"`
	LLM       LLMConfig       `mapstructure:"llm_service"`
	Upload    UploadConfig    `mapstructure:"upload"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	PublicBaseURL  string `mapstructure:"public_base_url"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

// GetAddress 获取服务器地址
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
	Enabled  bool   `mapstructure:"enabled"`
}

// GetAddress 获取Redis地址
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// WorkspaceConfig 工作区Cookie配置
type WorkspaceConfig struct {
	CookieName    string `mapstructure:"cookie_name"`
	SecretKey     string `mapstructure:"secret_key"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
}

// GetExpireDuration 获取Cookie过期时间
func (w *WorkspaceConfig) GetExpireDuration() time.Duration {
	return time.Duration(w.ExpireMinutes) * time.Minute
}

// CORSConfig CORS配置
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

// ImageAPIConfig 图片生成服务配置
type ImageAPIConfig struct {
	APIBase         string  `mapstructure:"api_base"`
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds"`
	DenoiseStrength float64 `mapstructure:"denoise_strength"`
}

// GetTimeout 获取单次调用超时时间
func (i *ImageAPIConfig) GetTimeout() time.Duration {
	return time.Duration(i.TimeoutSeconds) * time.Second
}

// LLMConfig 文案策略模型服务配置
type LLMConfig struct {
	APIBase       string `mapstructure:"api_base"`
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	MaxConcurrent int    `mapstructure:"max_concurrent"`
}

// UploadConfig 素材上传配置
type UploadConfig struct {
	Dir          string   `mapstructure:"dir"`
	MaxSizeMB    int64    `mapstructure:"max_size_mb"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

// GetMaxSizeBytes 获取最大上传字节数
func (u *UploadConfig) GetMaxSizeBytes() int64 {
	return u.MaxSizeMB * 1024 * 1024
}
