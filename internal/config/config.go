package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"

	"effrecon/internal/exporter"
)

// FileName 配置文件名，位于可执行文件同目录下
const FileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Input  InputConfig  `toml:"input"`
	Export ExportConfig `toml:"export"`
	Log    LogConfig    `toml:"log"`
	Schema SchemaConfig `toml:"schema"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// InputConfig 上传文件配置
type InputConfig struct {
	Encoding    string `toml:"encoding"`      // CSV 编码：utf-8 / windows-874 / utf-16
	MaxUploadMB int    `toml:"max_upload_mb"` // 单次上传总大小上限
}

// ExportConfig 导出配置
type ExportConfig struct {
	DownloadTTLMinutes int    `toml:"download_ttl_minutes"`
	DefaultScope       string `toml:"default_scope"` // all / gaps
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `toml:"level"`
}

// SchemaConfig 列名别名扩展（规范字段 -> 额外别名）
type SchemaConfig struct {
	Aliases map[string][]string `toml:"aliases"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path  string
	Found bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Input: InputConfig{
			Encoding:    "utf-8",
			MaxUploadMB: 64,
		},
		Export: ExportConfig{
			DownloadTTLMinutes: 30,
			DefaultScope:       string(exporter.ScopeAll),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate 校验配置取值
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Input.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("input.max_upload_mb must be positive: %d", c.Input.MaxUploadMB))
	}
	if c.Export.DownloadTTLMinutes <= 0 {
		errs = append(errs, fmt.Errorf("export.download_ttl_minutes must be positive: %d", c.Export.DownloadTTLMinutes))
	}
	if _, err := exporter.ParseScope(c.Export.DefaultScope); err != nil {
		errs = append(errs, fmt.Errorf("export.default_scope: %w", err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	for field, aliases := range c.Schema.Aliases {
		if strings.TrimSpace(field) == "" {
			errs = append(errs, errors.New("schema.aliases: empty field name"))
			continue
		}
		if len(aliases) == 0 {
			errs = append(errs, fmt.Errorf("schema.aliases.%s: no aliases", field))
		}
	}
	return errors.Join(errs...)
}

// LogLevel 解析日志级别；开发模式下至少为 debug
func (c *AppConfig) LogLevel() (zapcore.Level, error) {
	if c.Server.DevMode {
		return zapcore.DebugLevel, nil
	}
	return zapcore.ParseLevel(c.Log.Level)
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadFile 从指定路径加载配置，文件不存在时返回默认配置
func LoadFile(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			return config, info, nil
		}
		return nil, info, fmt.Errorf("read config %s: %w", path, err)
	}
	info.Found = true

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, info, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, info, nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return LoadFile(filepath.Join(exeDir, FileName))
}

// LoadConfig 从 config.toml 加载配置
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}
