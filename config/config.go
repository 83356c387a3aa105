package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	DBDriver   string // postgres | sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	JWTSecret string
	JWTTTL    time.Duration

	AWSRegion     string
	S3Bucket      string
	CloudFrontURL string
	SESEmail      string
	SNSFCMArn     string

	EdamamAppID  string
	EdamamAppKey string
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	} else if err != nil {
		log.Println("no .env file, using environment")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "nutriplan.db")
	v.SetDefault("JWT_TTL_HOURS", 72)
	v.SetDefault("AWS_REGION", "ap-south-1")

	return &Config{
		Port:          v.GetString("PORT"),
		DBDriver:      v.GetString("DB_DRIVER"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSLMODE"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTTTL:        time.Duration(v.GetInt("JWT_TTL_HOURS")) * time.Hour,
		AWSRegion:     v.GetString("AWS_REGION"),
		S3Bucket:      v.GetString("S3_BUCKET"),
		CloudFrontURL: v.GetString("CLOUDFRONT_URL"),
		SESEmail:      v.GetString("SES_EMAIL"),
		SNSFCMArn:     v.GetString("SNS_FCM_ARN"),
		EdamamAppID:   v.GetString("EDAMAM_APP_ID"),
		EdamamAppKey:  v.GetString("EDAMAM_APP_KEY"),
	}, nil
}
