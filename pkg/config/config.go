package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config carries every runtime setting. Values come from the environment
// (optionally seeded from a .env file by the caller).
type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"shop.db"`
	JWTSecret   string `envconfig:"JWT_SECRET"`

	ShopName    string `envconfig:"SHOP_NAME" default:"AGIB"`
	ShopAddress string `envconfig:"SHOP_ADDRESS"`
	ExportDir   string `envconfig:"EXPORT_DIR" default:"exports"`

	LowStockThreshold int `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
	MinPasswordLength int `envconfig:"MIN_PASSWORD_LENGTH" default:"4"`

	// ProductDeletePolicy decides what happens to products with recorded
	// sales/purchases: "restrict" refuses, "soft" hides (default), "hard"
	// removes the row.
	ProductDeletePolicy string `envconfig:"PRODUCT_DELETE_POLICY" default:"soft"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
