package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 结构体用于存储应用程序的配置信息
type Config struct {
	// Backend 选择文档库后端：memory | firestore | mysql | emulator
	Backend string
	// StorageProvider 选择对象存储：memory | local | s3 | gcs
	StorageProvider string

	FirebaseProjectID       string
	FirebaseCredentialsFile string
	FirebaseAPIKey          string
	FirebaseStorageBucket   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	S3Region         string
	S3Bucket         string
	GCSBucketName    string
	GCSCredentials   string
	LocalStoragePath string

	EmulatorAddr string
	JWTSecret    string
	LogLevel     string
	Debug        bool
}

// AppConfig 是全局配置变量
var AppConfig Config

// Init 函数用于初始化配置
func Init() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: no .env file loaded: %v", err)
	}

	AppConfig = Config{
		Backend:         getEnv("BACKEND", "memory"),
		StorageProvider: getEnv("STORAGE_PROVIDER", "local"),

		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		FirebaseAPIKey:          getEnv("FIREBASE_API_KEY", ""),
		FirebaseStorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "instaclone"),

		S3Region:         getEnv("S3_REGION", "us-west-2"),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		GCSBucketName:    getEnv("GCS_BUCKET_NAME", ""),
		GCSCredentials:   getEnv("GCS_CREDENTIALS_FILE", ""),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./uploads"),

		EmulatorAddr: getEnv("EMULATOR_ADDR", "http://localhost:8088"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Debug:        getEnvAsBool("DEBUG", false),
	}

	validateConfig()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func validateConfig() {
	switch AppConfig.Backend {
	case "memory", "emulator":
	case "firestore":
		if AppConfig.FirebaseProjectID == "" {
			log.Fatal("FIREBASE_PROJECT_ID is required for the firestore backend")
		}
	case "mysql":
		if AppConfig.DBUser == "" || AppConfig.DBPassword == "" {
			log.Fatal("DB_USER and DB_PASSWORD are required for the mysql backend")
		}
	default:
		log.Fatalf("unknown backend %q", AppConfig.Backend)
	}

	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET must not be empty")
	}
}
