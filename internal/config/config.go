package config

import (
	"crypto/rsa"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type Config struct {
	JWTPrivateKey *rsa.PrivateKey
	JWTPublicKey  *rsa.PublicKey
	DatabaseURL   string
	RedisAddress  string
	RedisPassword string
	Port          string
	LogLevel      string

	// VerifierPolicy selects the credential verification policy:
	// "local" matches against the user repository, "remote" delegates
	// to AuthEndpoint.
	VerifierPolicy string
	AuthEndpoint   string

	AllowedOrigins []string
}

func Load() *Config {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	privateKeyPath := getEnv("PRIVATE_KEY_PATH", "/etc/certs/private.pem")
	privateKey, err := loadPrivateKey(privateKeyPath)
	if err != nil {
		panic("Failed to load private key: " + err.Error())
	}

	publicKeyPath := getEnv("PUBLIC_KEY_PATH", "/etc/certs/public.pem")
	publicKey, err := loadPublicKey(publicKeyPath)
	if err != nil {
		panic("Failed to load public key: " + err.Error())
	}

	policy := getEnv("VERIFIER_POLICY", "local")

	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" && policy == "local" && os.Getenv("USE_MOCK_USERS") == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	authEndpoint := os.Getenv("AUTH_ENDPOINT")
	if policy == "remote" && authEndpoint == "" {
		panic("AUTH_ENDPOINT environment variable is required for the remote verifier policy")
	}

	return &Config{
		JWTPrivateKey:  privateKey,
		JWTPublicKey:   publicKey,
		DatabaseURL:    dbURL,
		// Empty means no Redis: sessions fall back to process memory.
		RedisAddress:   os.Getenv("REDIS_ADDRESS"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		VerifierPolicy: policy,
		AuthEndpoint:   authEndpoint,
		AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "*")},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPrivateKeyFromPEM(keyData)
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPublicKeyFromPEM(keyData)
}
