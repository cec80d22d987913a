package config

import (
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

type (
	PitboxConfig struct {
		Server   ServerConfig   `yaml:"server"`
		Database DatabaseConfig `yaml:"database"`
		Auth     AuthConfig     `yaml:"auth"`
		Storage  StorageConfig  `yaml:"storage"`
		Accounts AccountsConfig `yaml:"accounts"`
	}

	ServerConfig struct {
		Host           string   `yaml:"host"`
		Port           uint     `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	}

	DatabaseConfig struct {
		Host      string `yaml:"host"`
		User      string `yaml:"user"`
		Database  string `yaml:"database"`
		Port      uint   `yaml:"port"`
		LocalFile string `yaml:"localFile"`
	}

	AuthConfig struct {
		EnableNative       bool     `yaml:"enableNative"`
		EnableOpenId       bool     `yaml:"enableOpenId"`
		OpenIdIssuer       string   `yaml:"openIdIssuer"`
		OpenIdClientId     string   `yaml:"openIdClientId"`
		OpenIdRedirectHost string   `yaml:"openIdRedirectHost"`
		OpenIdAdminGroups  []string `yaml:"openIdAdminGroups"`
	}

	// StorageConfig selects where uploaded photos end up. Type is either
	// "disk" or "s3".
	StorageConfig struct {
		Type          string `yaml:"type"`
		DiskDirectory string `yaml:"diskDirectory"`
		PublicBaseUrl string `yaml:"publicBaseUrl"`
		S3Bucket      string `yaml:"s3Bucket"`
		S3Region      string `yaml:"s3Region"`
		S3Endpoint    string `yaml:"s3Endpoint"`
		ThumbSize     uint   `yaml:"thumbSize"`
	}

	AccountsConfig struct {
		FreeModelQuota int `yaml:"freeModelQuota"`
	}
)

func Load(fileName string) *PitboxConfig {
	config := defaultConfig()

	if configData, err := os.ReadFile(fileName); err != nil {
		log.Warn("Failed to load configuration file.", "path", fileName)
		data, err := yaml.Marshal(&config)
		err = os.WriteFile(fileName, data, 0755)
		if err != nil {
			log.Error("Failed to write default configuration file.", "path", fileName)
		}
	} else if err := yaml.Unmarshal(configData, &config); err != nil {
		log.Error("Failed to parse configuration file.", "error", err.Error())
	}

	return config
}

func defaultConfig() *PitboxConfig {
	return &PitboxConfig{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           3000,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Database: DatabaseConfig{
			Host:      "127.0.0.1",
			User:      "pitbox",
			Database:  "pitbox",
			Port:      5432,
			LocalFile: "./test.db",
		},
		Auth: AuthConfig{
			EnableNative:       true,
			EnableOpenId:       false,
			OpenIdIssuer:       "",
			OpenIdClientId:     "",
			OpenIdRedirectHost: "http://localhost:3000",
			OpenIdAdminGroups:  make([]string, 0),
		},
		Storage: StorageConfig{
			Type:          "disk",
			DiskDirectory: "./storage/photos/",
			PublicBaseUrl: "http://localhost:3000/files",
			S3Bucket:      "",
			S3Region:      "eu-central-1",
			S3Endpoint:    "",
			ThumbSize:     320,
		},
		Accounts: AccountsConfig{
			FreeModelQuota: 3,
		},
	}
}
