package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Mirror MirrorConfig `toml:"mirror"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据目录配置
type DataConfig struct {
	DataDir    string `toml:"data_dir"`
	AutoBackup bool   `toml:"auto_backup"`
	BackupCron string `toml:"backup_cron"` // cron 表达式，auto_backup 开启时生效
}

// MirrorConfig 远端镜像（代码托管 API）配置。
// 镜像只是兜底备份，本地文件永远是数据源；任何镜像失败都只告警。
type MirrorConfig struct {
	Enabled bool   `toml:"enabled"`
	APIBase string `toml:"api_base"` // 形如 https://api.github.com
	Repo    string `toml:"repo"`     // owner/repo
	Branch  string `toml:"branch"`
	Path    string `toml:"path"`  // 仓库内目标文件路径
	Token   string `toml:"token"` // 也可用环境变量 WINE_MIRROR_TOKEN 注入
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20782,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:    "data",
			AutoBackup: false,
			BackupCron: "0 2 * * *",
		},
		Mirror: MirrorConfig{
			APIBase: "https://api.github.com",
			Branch:  "main",
			Path:    "cleaned_data.xlsx",
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 从可执行文件同目录的 config.toml 加载配置。
// 配置文件不存在时用默认配置；环境变量覆盖用于本地调试与密钥注入。
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnv(config)
	return config, nil
}

func applyEnv(config *AppConfig) {
	if v := os.Getenv("WINE_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("WINE_MIRROR_TOKEN"); v != "" {
		config.Mirror.Token = v
	}
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 确保数据目录及各子目录存在，返回数据目录绝对路径
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports", "backups"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
