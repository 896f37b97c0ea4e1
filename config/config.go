package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config armazena todas as configurações do cliente GoClinic.
// Todos os campos são definidos com base nos requisitos do projeto
// (API remota, Sessão, Cache, Robustez).
type Config struct {
	// Geral
	Environment string
	LogLevel    string

	// API remota (CareConnect)
	APIBaseURL  string
	HTTPTimeout time.Duration // Módulo: Context and Timeouts

	// Sessão (armazenamento local de token/identidade)
	SessionBackend string // "file" ou "redis"
	SessionFile    string
	SessionTTL     time.Duration // 0 = sem expiração (comportamento do localStorage)

	// Sessão compartilhada (Redis), usada em terminais de balcão/kiosk
	RedisAddr string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. API remota
		// A URL base pode ser sobrescrita para apontar para staging ou para um mock de teste.
		APIBaseURL:  getEnv("CARECONNECT_API_URL", "https://careconnect-api-v2kw.onrender.com"),
		HTTPTimeout: getDurationEnv("HTTP_TIMEOUT_SEC", 15) * time.Second, // 15s padrão

		// 3. Sessão
		SessionBackend: getEnv("SESSION_BACKEND", "file"),
		SessionFile:    getEnv("SESSION_FILE", defaultSessionFile()),
		SessionTTL:     getDurationEnv("SESSION_TTL_MIN", 0) * time.Minute,

		// 4. Redis (somente quando SESSION_BACKEND=redis)
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
	}

	return cfg
}

// defaultSessionFile calcula o caminho padrão do arquivo de sessão
// (o análogo do localStorage do navegador).
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Sem diretório home (ex: container mínimo): usa o diretório atual.
		return ".goclinic-session.json"
	}
	return filepath.Join(home, ".goclinic", "session.json")
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}
