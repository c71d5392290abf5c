package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/habithero/habitherod/pkg/validation"
)

type Config struct {
	Development bool
	// API configuration
	APIPort int
	// Postgres configuration
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     int
	PostgresDB       string
	// Blockchain configuration
	RPCURL                  string
	NetworkID               *big.Int
	RegistryContractAddress string
	// SignerKey is the hex private key used to submit transactions on
	// behalf of connected wallets.
	SignerKey string
	// CompanionBytecode is the hex bytecode of the per-user habit
	// contract. Deployment is refused when it is unset.
	CompanionBytecode string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// IPFS configuration
	IPFSAPIURL        string
	IPFSGateway       string
	IPFSPublicGateway string
	// BadgeAssetPath is the local image pinned as the habit badge.
	BadgeAssetPath string

	// Delivery configuration (optional; channels are disabled when unset)
	TelegramBotToken string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPSender   string
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Development:      getEnvAsBool("DEVELOPMENT", false),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "password"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvAsInt("POSTGRES_PORT", 5432),
		PostgresDB:       getEnv("POSTGRES_DB", "habithero"),

		RPCURL:                  getEnv("BLOCKCHAIN_RPC_URL", "http://localhost:8545"),
		NetworkID:               getEnvAsBigInt("NETWORK_ID", big.NewInt(1)),
		RegistryContractAddress: getEnv("REGISTRY_CONTRACT_ADDRESS", ""),
		SignerKey:               getEnv("SIGNER_KEY", ""),
		CompanionBytecode:       getEnv("COMPANION_BYTECODE", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),

		IPFSAPIURL:        getEnv("IPFS_API_URL", "http://127.0.0.1:5001/api/v0/add"),
		IPFSGateway:       getEnv("IPFS_GATEWAY", "http://127.0.0.1:8081/ipfs/"),
		IPFSPublicGateway: getEnv("IPFS_PUBLIC_GATEWAY", "https://ipfs.io/ipfs/"),
		BadgeAssetPath:    getEnv("BADGE_ASSET_PATH", "assets/logo.svg"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPSender:   getEnv("SMTP_SENDER", ""),

		APIPort: getEnvAsInt("API_PORT", 5200),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are properly set
func (c *Config) Validate() error {
	if c.RegistryContractAddress == "" {
		return fmt.Errorf("REGISTRY_CONTRACT_ADDRESS is required")
	}

	if err := validation.ValidateAddress(c.RegistryContractAddress); err != nil {
		return fmt.Errorf("invalid REGISTRY_CONTRACT_ADDRESS format: %w", err)
	}

	if c.RPCURL == "" {
		return fmt.Errorf("BLOCKCHAIN_RPC_URL is required")
	}

	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}

	if c.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL is required")
	}

	if c.PostgresDB == "" {
		return fmt.Errorf("POSTGRES_DB is required")
	}

	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}

	return nil
}

// Helper functions to read environment variables
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBigInt(name string, defaultValue *big.Int) *big.Int {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, ok := new(big.Int).SetString(valueStr, 10); ok {
			return value
		}
	}
	return defaultValue
}
