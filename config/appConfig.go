package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type OzonConfig struct {
	ClientID string `yaml:"client_id"`
	ApiKey   string `yaml:"api_key"`
}

// CampaignConfig — одна кампания Яндекс.Маркета со своим складом.
type CampaignConfig struct {
	CampaignID  string `yaml:"campaign_id"`
	WarehouseID string `yaml:"warehouse_id"`
}

type MarketConfig struct {
	Token string         `yaml:"token"`
	FBS   CampaignConfig `yaml:"fbs"`
	DBS   CampaignConfig `yaml:"dbs"`
}

type FeedConfig struct {
	URL string `yaml:"url"`
	// HeaderOffset — сколько строк преамбулы в выгрузке до заголовка.
	HeaderOffset int `yaml:"header_offset"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type AppConfig struct {
	Ozon     OzonConfig     `yaml:"ozon"`
	Market   MarketConfig   `yaml:"market"`
	Feed     FeedConfig     `yaml:"feed"`
	Auth     AuthConfig     `yaml:"auth"`
	Postgres PostgresConfig `yaml:"postgres"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	config.applyEnv()
	return config, nil
}

// Validate проверяет идентификаторы, без которых синхронизация не
// имеет смысла. Отсутствие БД не ошибка: история запусков опциональна.
func (c *AppConfig) Validate() error {
	if c.Ozon.ClientID == "" || c.Ozon.ApiKey == "" {
		return fmt.Errorf("config: ozon client_id/api_key are required")
	}
	if c.Market.Token == "" {
		return fmt.Errorf("config: market token is required")
	}
	if c.Market.FBS.CampaignID == "" || c.Market.DBS.CampaignID == "" {
		return fmt.Errorf("config: market campaign ids are required")
	}
	if c.Feed.URL == "" {
		return fmt.Errorf("config: feed url is required")
	}
	return nil
}

// applyEnv — секреты из окружения имеют приоритет над файлом.
func (c *AppConfig) applyEnv() {
	c.Ozon.ClientID = getEnv("OZON_CLIENT_ID", c.Ozon.ClientID)
	c.Ozon.ApiKey = getEnv("OZON_API_KEY", c.Ozon.ApiKey)
	c.Market.Token = getEnv("MARKET_TOKEN", c.Market.Token)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	if !c.Postgres.Configured() && os.Getenv("POSTGRES_HOST") != "" {
		c.Postgres = *GetPostgresConfig()
	}
}
