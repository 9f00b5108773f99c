package config

import (
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Shopify  ShopifyConfig  `yaml:"shopify"`
	App      AppConfig      `yaml:"app"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

type LLMConfig struct {
	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// ShopifyConfig Shopify 应用凭据
type ShopifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
	APIVersion   string `yaml:"api_version"`
	Scopes       string `yaml:"scopes"` // 逗号分隔
}

// AppConfig 对外地址与签名密钥
type AppConfig struct {
	PublicURL    string `yaml:"public_url"`
	DashboardURL string `yaml:"dashboard_url"`
	Secret       string `yaml:"secret"` // 用于 OAuth state 签名与 token 加密
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/app.db",
		},
		LLM: LLMConfig{
			APIURL:    "https://api.openai.com/v1",
			Model:     "gpt-4o",
			MaxTokens: 4096,
		},
		Shopify: ShopifyConfig{
			APIVersion: "2024-01",
			Scopes:     "read_products,read_content,read_themes",
		},
		App: AppConfig{
			PublicURL:    "http://localhost:8080",
			DashboardURL: "http://localhost:3000",
		},
	}
}

func loadConfig() *Config {
	config := defaultConfig()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	applyEnv(config)
	return config
}

// applyEnv 环境变量优先级高于配置文件
func applyEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.LLM.APIURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL_NAME"); model != "" {
		config.LLM.Model = model
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	// Shopify 环境变量
	if clientID := os.Getenv("SHOPIFY_CLIENT_ID"); clientID != "" {
		config.Shopify.ClientID = clientID
	}
	if clientSecret := os.Getenv("SHOPIFY_CLIENT_SECRET"); clientSecret != "" {
		config.Shopify.ClientSecret = clientSecret
	}
	if redirectURI := os.Getenv("SHOPIFY_REDIRECT_URI"); redirectURI != "" {
		config.Shopify.RedirectURI = redirectURI
	}

	if publicURL := os.Getenv("APP_PUBLIC_URL"); publicURL != "" {
		config.App.PublicURL = publicURL
	}
	if dashboardURL := os.Getenv("APP_DASHBOARD_URL"); dashboardURL != "" {
		config.App.DashboardURL = dashboardURL
	}
	if secret := os.Getenv("APP_SECRET"); secret != "" {
		config.App.Secret = secret
	}

	if config.Shopify.RedirectURI == "" {
		config.Shopify.RedirectURI = strings.TrimSuffix(config.App.PublicURL, "/") + "/api/shopify/callback"
	}
}

// ShopifyConfigured 是否配置了 Shopify 应用
func (c *Config) ShopifyConfigured() bool {
	return c.Shopify.ClientID != "" && c.Shopify.ClientSecret != ""
}

// LLMConfigured 是否配置了 LLM
func (c *Config) LLMConfigured() bool {
	return c.LLM.APIKey != ""
}

// Save 将配置写回 yaml 文件
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
