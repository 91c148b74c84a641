package config

import (
	"os"
	"strings"
)

type Config struct {
	Port               string
	Env                string
	DBDriver           string
	DatabaseURL        string
	JWTSecret          string
	GitHubClientID     string
	GitHubClientSecret string
	GitHubRedirectURL  string
	AdminUserIDs       []string
	MinioEndpoint      string
	MinioAccessKey     string
	MinioSecretKey     string
	MinioBucket        string
	MinioUseSSL        bool
	PublicMediaBaseURL string
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		DBDriver:           getEnv("DB_DRIVER", "sqlite"),
		DatabaseURL:        getEnv("DATABASE_URL", "sociable.db"),
		JWTSecret:          getEnv("JWT_SECRET", "supersecretjwtkey"),
		GitHubClientID:     getEnv("GITHUB_ID", ""),
		GitHubClientSecret: getEnv("GITHUB_SECRET", ""),
		GitHubRedirectURL:  getEnv("GITHUB_REDIRECT_URL", "http://localhost:8080/api/v1/auth/github/callback"),
		AdminUserIDs:       splitList(getEnv("ADMIN_USER_IDS", "")),
		MinioEndpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:     getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:        getEnv("MINIO_BUCKET", "sociable-media"),
		MinioUseSSL:        getEnv("MINIO_USE_SSL", "false") == "true",
		PublicMediaBaseURL: getEnv("PUBLIC_MEDIA_BASE_URL", ""),
	}
}

// IsAdmin reports whether the given user ID is in the configured admin list
func (c *Config) IsAdmin(userID string) bool {
	for _, id := range c.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
