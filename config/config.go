package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	AppName    string `json:"appname"`
	AppEnv     string `json:"appenv"`
	AppPort    uint16 `json:"appport"`
	GinMode    string `json:"ginmode"`
	DBDriver   string `json:"dbdriver"`
	DBHost     string `json:"dbhost"`
	DBPort     uint16 `json:"dbport"`
	DBName     string `json:"dbname"`
	DBUser     string `json:"dbuser"`
	DBPass     string `json:"dbpass"`
	UploadDir  string `json:"uploaddir"`
	RateLimit  int    `json:"ratelimit"`
	RateWindow time.Duration `json:"ratewindow"`
}

var config *Config
var once sync.Once

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// LoadConfig loads the environment variables from a .env file, and returns a
// singleton Config instance. A missing .env is not fatal so tests and
// containerized deployments can rely on the process environment alone.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(getEnv("PORT", "5000"), 10, 16)
		dbPort, _ := strconv.ParseUint(getEnv("DBPORT", "3306"), 10, 16)
		rateLimit, _ := strconv.Atoi(getEnv("RATE_LIMIT", "0"))
		rateWindowSec, _ := strconv.Atoi(getEnv("RATE_WINDOW_SECONDS", "0"))

		config = &Config{
			AppName:    getEnv("APPNAME", "famed-api"),
			AppEnv:     os.Getenv("APPENV"),
			AppPort:    uint16(appPort),
			GinMode:    os.Getenv("GINMODE"),
			DBDriver:   getEnv("DBDRIVER", "mysql"),
			DBHost:     os.Getenv("DBHOST"),
			DBPort:     uint16(dbPort),
			DBName:     os.Getenv("DBNAME"),
			DBUser:     os.Getenv("DBUSER"),
			DBPass:     os.Getenv("DBPASS"),
			UploadDir:  getEnv("UPLOAD_DIR", "./uploads"),
			RateLimit:  rateLimit,
			RateWindow: time.Duration(rateWindowSec) * time.Second,
		}
	})
	return config
}

// ResetConfigForTesting clears the config singleton so tests can reload it
// with a different environment. This should only be used in tests.
func ResetConfigForTesting() {
	config = nil
	once = sync.Once{}
}
