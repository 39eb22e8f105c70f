package config

import (
	"os"
	"path"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type SystemConfig struct {
	Workdir       string `yaml:"workdir" json:"workdir"`
	Location      string `yaml:"location" json:"location"`
	BundledAssets string `yaml:"bundled_assets" json:"bundled_assets"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System SystemConfig `yaml:"system" json:"system"`
	Web    WebConfig    `yaml:"web" json:"web"`
	Logger LoggerConfig `yaml:"logger" json:"logger"`
}

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SystemConfig{
			Workdir:       "/var/kasse",
			Location:      "Europe/Berlin",
			BundledAssets: "/usr/share/kasse/assets",
		},
		Web: WebConfig{
			Host:   "127.0.0.1",
			Port:   1817,
			Secret: "kasse-secret",
		},
		Logger: LoggerConfig{
			Mode:       "development",
			FileEnable: true,
			Filename:   path.Join("/var/kasse", "kasse.log"),
		},
	}
}

// LoadConfig reads the YAML config file, falling back to defaults for
// anything unset. A missing file is not an error.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if cfile == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(cfile)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", cfile)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", cfile)
	}
	return cfg, nil
}
