package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr            = ":8000"
	DefaultVisionModel     = "mistralai/mistral-small-3.2-24b-instruct:free"
	DefaultVisionBaseURL   = "https://openrouter.ai/api/v1"
	DefaultVisionTimeout   = 30 * time.Second
	DefaultMaxAPIDocuments = 5
	DefaultMaxUploadBytes  = 10 << 20
	DefaultMaxImageDim     = 1024
	DefaultFaceThreshold   = 0.4
)

// Server captures process level configuration.
type Server struct {
	Addr           string
	LogLevel       string
	Environment    string
	MaxUploadBytes int64
	RequestTimeout time.Duration
	WorkerPoolSize int

	Vision     VisionConfig
	OCR        OCRConfig
	Liveness   LivenessConfig
	FaceVerify FaceVerifyConfig
	Auth       AuthConfig
	Redis      RedisConfig
	Sentry     SentryConfig
}

// VisionConfig configures the vision-language completion service.
// An empty APIKey disables the API strategy without failing startup.
type VisionConfig struct {
	APIKey          string
	Model           string
	BaseURL         string
	SiteURL         string
	AppTitle        string
	Timeout         time.Duration
	RatePerMinute   int
	MaxAPIDocuments int
	MaxImageDim     int
}

// Enabled reports whether API extraction may be attempted.
func (c VisionConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

type OCRConfig struct {
	Languages []string
	TempDir   string
}

type LivenessConfig struct {
	SessionTTL      time.Duration
	MaxFrames       int
	CleanupInterval time.Duration
	FaceMeshURL     string
}

type FaceVerifyConfig struct {
	URL       string
	Threshold float64
	Model     string
	Detector  string
	Timeout   time.Duration
}

// AuthConfig enables bearer-token checks when SigningKey is set.
type AuthConfig struct {
	SigningKey string
	Audience   string
}

// RedisConfig selects the Redis liveness store when URL is set.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type SentryConfig struct {
	DSN         string
	SampleRate  float64
	Environment string
}

// FromEnv builds a Server config from the environment. A .env file in the
// working directory is loaded first; variables already set take precedence.
func FromEnv() Server {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")
	return Server{
		Addr:           getEnv("ADDR", DefaultAddr),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Environment:    env,
		MaxUploadBytes: int64(getInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 90*time.Second),
		WorkerPoolSize: getInt("WORKER_POOL_SIZE", 4),
		Vision: VisionConfig{
			APIKey:          os.Getenv("OPENROUTER_API_KEY"),
			Model:           getEnv("OPENROUTER_MODEL", DefaultVisionModel),
			BaseURL:         strings.TrimRight(getEnv("OPENROUTER_BASE_URL", DefaultVisionBaseURL), "/"),
			SiteURL:         getEnv("OPENROUTER_SITE_URL", "http://localhost:8000"),
			AppTitle:        getEnv("OPENROUTER_APP_TITLE", "KYC Document Extraction"),
			Timeout:         time.Duration(getInt("OPENROUTER_TIMEOUT_SECONDS", int(DefaultVisionTimeout/time.Second))) * time.Second,
			RatePerMinute:   getInt("OPENROUTER_RATE_PER_MINUTE", 20),
			MaxAPIDocuments: getInt("MAX_DOCUMENTS_FOR_API", DefaultMaxAPIDocuments),
			MaxImageDim:     getInt("MAX_IMAGE_DIMENSION", DefaultMaxImageDim),
		},
		OCR: OCRConfig{
			Languages: getList("OCR_LANGUAGES", []string{"eng"}),
			TempDir:   getEnv("OCR_TEMP_DIR", os.TempDir()),
		},
		Liveness: LivenessConfig{
			SessionTTL:      getDuration("LIVENESS_SESSION_TTL", 5*time.Minute),
			MaxFrames:       getInt("LIVENESS_MAX_FRAMES", 60),
			CleanupInterval: getDuration("LIVENESS_CLEANUP_INTERVAL", time.Minute),
			FaceMeshURL:     os.Getenv("FACE_MESH_URL"),
		},
		FaceVerify: FaceVerifyConfig{
			URL:       os.Getenv("FACE_VERIFY_URL"),
			Threshold: getFloat("FACE_VERIFY_THRESHOLD", DefaultFaceThreshold),
			Model:     getEnv("FACE_VERIFY_MODEL", "ArcFace"),
			Detector:  getEnv("FACE_VERIFY_DETECTOR", "retinaface"),
			Timeout:   getDuration("FACE_VERIFY_TIMEOUT", 60*time.Second),
		},
		Auth: AuthConfig{
			SigningKey: os.Getenv("JWT_SIGNING_KEY"),
			Audience:   getEnv("JWT_AUDIENCE", "kycscan-client"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Sentry: SentryConfig{
			DSN:         os.Getenv("SENTRY_DSN"),
			SampleRate:  getFloat("SENTRY_SAMPLE_RATE", 1.0),
			Environment: env,
		},
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil && v > 0 {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64); err == nil && v >= 0 {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key))); err == nil && v > 0 {
		return v
	}
	return def
}

func getList(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '+' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
