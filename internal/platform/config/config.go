package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Institutional email domain required for teacher accounts, e.g. "glbitm.ac.in".
	TeacherEmailDomain string

	// Trailing attendance window, in calendar days.
	AttendanceWindowDays int

	// Optional fixed "today" (YYYY-MM-DD) for demo/term installs. Empty means wall clock.
	DemoToday string

	LeetcodeAPIBaseURL string
	CodechefAPIBaseURL string
	GithubAPIBaseURL   string

	PlatformFetchTimeoutSeconds int
	RankingsCacheTTLMinutes     int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:    getEnv("API_PORT", "8080"),
		JWTKey:     []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:     time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "nextrack_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		TeacherEmailDomain:   getEnv("TEACHER_EMAIL_DOMAIN", "glbitm.ac.in"),
		AttendanceWindowDays: getEnvAsInt("ATTENDANCE_WINDOW_DAYS", 30),
		DemoToday:            getEnv("DEMO_TODAY", ""),

		LeetcodeAPIBaseURL: getEnv("LEETCODE_API_BASE_URL", "https://leetcode-api-faisalshohag.vercel.app"),
		CodechefAPIBaseURL: getEnv("CODECHEF_API_BASE_URL", "https://codechef-api.vercel.app"),
		GithubAPIBaseURL:   getEnv("GITHUB_API_BASE_URL", "https://api.github.com"),

		PlatformFetchTimeoutSeconds: getEnvAsInt("PLATFORM_FETCH_TIMEOUT_SECONDS", 10),
		RankingsCacheTTLMinutes:     getEnvAsInt("RANKINGS_CACHE_TTL_MINUTES", 15),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

// Today returns the current calendar day, honoring the DEMO_TODAY override.
func (c *Config) Today() time.Time {
	if c.DemoToday != "" {
		if t, err := time.Parse("2006-01-02", c.DemoToday); err == nil {
			return t
		}
		log.Printf("Invalid DEMO_TODAY %q, falling back to wall clock", c.DemoToday)
	}
	return time.Now().UTC()
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
