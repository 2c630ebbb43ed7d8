package config

import (
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file in the working directory is honored.
func Load() *Config {
	return &Config{
		App: App{
			Env:      GetEnvString("HEALTHLOG_ENV", "production"),
			PageSize: GetEnvInt("HEALTHLOG_PAGE_SIZE", 10),
			Theme:    GetEnvString("HEALTHLOG_THEME", "classic"),
			NoColor:  GetEnvBool("HEALTHLOG_NO_COLOR", false),
		},
		API: API{
			BaseURL:            GetEnvString("HEALTHLOG_API_URL", "http://localhost:3000/api/v1"),
			RequestTimeout:     time.Duration(GetEnvInt("HEALTHLOG_REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
			RateLimitPerSecond: GetEnvInt("HEALTHLOG_RATE_LIMIT_PER_SECOND", 5),
		},
		Logger: Logger{
			Level:          GetEnvString("HEALTHLOG_LOG_LEVEL", "info"),
			OutputFileName: GetEnvString("HEALTHLOG_LOG_FILE", "healthlog.log"),
		},
	}
}

func (c *Config) IsDevelopment() bool { return c.App.Env == "development" }
