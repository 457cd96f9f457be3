package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"golayout/internal/domain"
)

// Config armazena todas as configurações do serviço golayout.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL    string
	DBTimeout      time.Duration
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnLifetime time.Duration
	DBMaxTxRetries int

	// Cache (Redis)
	RedisAddr    string
	CacheTimeout time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Layout
	Warehouse           WarehouseBounds
	ZoneCodeMaxAttempts int
}

// WarehouseBounds são os limites fixos do armazém, lidos uma vez na inicialização.
type WarehouseBounds struct {
	OriginX int
	OriginY int
	Width   int
	Height  int
}

// Current devolve os limites como retângulo. Height ocupa o eixo Y (Length).
func (b WarehouseBounds) Current() domain.Rectangle {
	return domain.Rectangle{OriginX: b.OriginX, OriginY: b.OriginY, Width: b.Width, Length: b.Height}
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Banco de Dados (PostgreSQL)
		DatabaseURL:    mustGetEnv("DATABASE_URL"),
		DBTimeout:      getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
		DBMaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
		DBConnLifetime: getDurationEnv("DB_CONN_LIFETIME_MIN", 5) * time.Minute,
		DBMaxTxRetries: getIntEnv("DB_MAX_TX_RETRIES", 3),

		// 3. Cache (Redis)
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout: getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second,

		// 4. Segurança (JWT)
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		// 6. Layout
		Warehouse: WarehouseBounds{
			OriginX: getIntEnv("WAREHOUSE_ORIGIN_X", 0),
			OriginY: getIntEnv("WAREHOUSE_ORIGIN_Y", 0),
			Width:   getIntEnv("WAREHOUSE_WIDTH", 100),
			Height:  getIntEnv("WAREHOUSE_HEIGHT", 50),
		},
		ZoneCodeMaxAttempts: getIntEnv("ZONE_CODE_MAX_ATTEMPTS", 16),
	}

	return cfg
}

// Validate rejeita combinações que impedem o serviço de decidir posicionamentos.
func (c *Config) Validate() error {
	if c.Warehouse.Width <= 0 || c.Warehouse.Height <= 0 {
		return fmt.Errorf("limites do armazém inválidos: largura %d, altura %d", c.Warehouse.Width, c.Warehouse.Height)
	}
	if c.DBMaxTxRetries < 0 {
		return fmt.Errorf("DB_MAX_TX_RETRIES não pode ser negativo: %d", c.DBMaxTxRetries)
	}
	if c.ZoneCodeMaxAttempts <= 0 {
		return fmt.Errorf("ZONE_CODE_MAX_ATTEMPTS deve ser positivo: %d", c.ZoneCodeMaxAttempts)
	}
	return nil
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
