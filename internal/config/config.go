package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".catops"
	DefaultConfigFile = "config.yaml"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig            `yaml:"database"`
	Storage  StorageConfig             `yaml:"storage"`
	Imports  ImportsConfig             `yaml:"imports,omitempty"`
	Defaults DefaultsConfig            `yaml:"defaults,omitempty"`
	Vendors  map[string]*VendorProfile `yaml:"vendors,omitempty"` // overrides/additions to the built-in profiles
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Database    string `yaml:"database"`
	UsernameEnv string `yaml:"username_env"` // Environment variable for username
	PasswordEnv string `yaml:"password_env"` // Environment variable for password
	SSLMode     string `yaml:"ssl_mode"`
}

// StorageConfig holds processed-image storage settings
type StorageConfig struct {
	Backend   string      `yaml:"backend"` // "local" or "minio"
	OutputDir string      `yaml:"output_dir"`
	Minio     MinioConfig `yaml:"minio,omitempty"`
}

// MinioConfig holds object storage settings
type MinioConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Bucket       string `yaml:"bucket"`
	AccessKeyEnv string `yaml:"access_key_env"`
	SecretKeyEnv string `yaml:"secret_key_env"`
	UseSSL       bool   `yaml:"use_ssl"`
}

// ImportsConfig holds import run settings
type ImportsConfig struct {
	Parallelism   int    `yaml:"parallelism"`     // Concurrent product groups
	StoreTimeoutS int    `yaml:"store_timeout_s"` // Per-call catalog store timeout
	DefaultVendor string `yaml:"default_vendor,omitempty"`
}

// DefaultsConfig holds defaults applied to imported products
type DefaultsConfig struct {
	StockQuantity int    `yaml:"stock_quantity"`
	Status        string `yaml:"status"`
	WarehouseID   string `yaml:"warehouse_id,omitempty"`
	SupplierID    string `yaml:"supplier_id,omitempty"`
	BrandID       string `yaml:"brand_id,omitempty"`
	CategoryID    string `yaml:"category_id,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:        "localhost",
			Port:        5432,
			Database:    "catops",
			UsernameEnv: "POSTGRES_USER",
			PasswordEnv: "POSTGRES_PASSWORD",
			SSLMode:     "prefer",
		},
		Storage: StorageConfig{
			Backend:   "local",
			OutputDir: "./public/uploads",
			Minio: MinioConfig{
				Endpoint:     "localhost:9000",
				Bucket:       "catalog-images",
				AccessKeyEnv: "MINIO_ACCESS_KEY",
				SecretKeyEnv: "MINIO_SECRET_KEY",
			},
		},
		Imports: ImportsConfig{
			Parallelism:   1,
			StoreTimeoutS: 30,
		},
		Defaults: DefaultsConfig{
			StockQuantity: 0,
			Status:        "DRAFT",
		},
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// Load reads the configuration from the config file
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadFrom(configPath)
}

// LoadFrom reads the configuration from a specific path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for missing values
	applyDefaults(&config)

	return &config, nil
}

// Save writes the configuration to the config file
func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return SaveTo(config, configPath)
}

// SaveTo writes the configuration to a specific path
func SaveTo(config *Config, path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Init creates a new config file with defaults
func Init() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	return Save(DefaultConfig())
}

// Exists checks if the config file exists
func Exists() bool {
	configPath, err := GetConfigPath()
	if err != nil {
		return false
	}

	_, err = os.Stat(configPath)
	return err == nil
}

// applyDefaults fills in missing values with defaults
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Database.Port == 0 {
		config.Database.Port = defaults.Database.Port
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = defaults.Database.SSLMode
	}
	if config.Storage.Backend == "" {
		config.Storage.Backend = defaults.Storage.Backend
	}
	if config.Storage.OutputDir == "" {
		config.Storage.OutputDir = defaults.Storage.OutputDir
	}
	if config.Imports.Parallelism <= 0 {
		config.Imports.Parallelism = defaults.Imports.Parallelism
	}
	if config.Imports.StoreTimeoutS <= 0 {
		config.Imports.StoreTimeoutS = defaults.Imports.StoreTimeoutS
	}
	if config.Defaults.Status == "" {
		config.Defaults.Status = defaults.Defaults.Status
	}
}

// Set updates a specific config value
func Set(key, value string) error {
	config, err := Load()
	if err != nil {
		return err
	}

	switch key {
	case "database.host":
		config.Database.Host = value
	case "database.port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port: %s", value)
		}
		config.Database.Port = port
	case "database.database":
		config.Database.Database = value
	case "database.username_env":
		config.Database.UsernameEnv = value
	case "database.password_env":
		config.Database.PasswordEnv = value
	case "database.ssl_mode":
		config.Database.SSLMode = value
	case "storage.backend":
		config.Storage.Backend = value
	case "storage.output_dir":
		config.Storage.OutputDir = value
	case "storage.minio.endpoint":
		config.Storage.Minio.Endpoint = value
	case "storage.minio.bucket":
		config.Storage.Minio.Bucket = value
	case "imports.parallelism":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid parallelism: %s", value)
		}
		config.Imports.Parallelism = n
	case "imports.default_vendor":
		config.Imports.DefaultVendor = value
	case "defaults.stock_quantity":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid stock quantity: %s", value)
		}
		config.Defaults.StockQuantity = n
	case "defaults.status":
		config.Defaults.Status = value
	case "defaults.warehouse_id":
		config.Defaults.WarehouseID = value
	case "defaults.supplier_id":
		config.Defaults.SupplierID = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return Save(config)
}

// Get retrieves a specific config value
func Get(key string) (string, error) {
	config, err := Load()
	if err != nil {
		return "", err
	}

	switch key {
	case "database.host":
		return config.Database.Host, nil
	case "database.port":
		return strconv.Itoa(config.Database.Port), nil
	case "database.database":
		return config.Database.Database, nil
	case "database.username_env":
		return config.Database.UsernameEnv, nil
	case "database.password_env":
		return config.Database.PasswordEnv, nil
	case "database.ssl_mode":
		return config.Database.SSLMode, nil
	case "storage.backend":
		return config.Storage.Backend, nil
	case "storage.output_dir":
		return config.Storage.OutputDir, nil
	case "storage.minio.endpoint":
		return config.Storage.Minio.Endpoint, nil
	case "storage.minio.bucket":
		return config.Storage.Minio.Bucket, nil
	case "imports.parallelism":
		return strconv.Itoa(config.Imports.Parallelism), nil
	case "imports.default_vendor":
		return config.Imports.DefaultVendor, nil
	case "defaults.stock_quantity":
		return strconv.Itoa(config.Defaults.StockQuantity), nil
	case "defaults.status":
		return config.Defaults.Status, nil
	case "defaults.warehouse_id":
		return config.Defaults.WarehouseID, nil
	case "defaults.supplier_id":
		return config.Defaults.SupplierID, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}
