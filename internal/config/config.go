package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	App     AppConfig
	Log     LogConfig
	OCR     OCRConfig
	Grammar GrammarConfig
	Gemini  GeminiConfig
	TTS     TTSConfig
	S3      S3Config
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type AppConfig struct {
	UploadDir      string
	AudioDir       string
	TemplatesDir   string
	MaxUploadSize  int64
	AllowedFormats []string
	AudioRetention time.Duration
}

type LogConfig struct {
	Level string
}

type OCRConfig struct {
	Languages       []string
	UpscaleMinWidth int
}

type GrammarConfig struct {
	APIURL   string
	Language string
}

// GeminiConfig holds the hosted model settings. An empty APIKey is accepted here;
// the summarizer reports it when it is first called.
type GeminiConfig struct {
	APIKey  string
	APIBase string
	Model   string
}

type TTSConfig struct {
	Engine   string
	APIBase  string
	APIKey   string
	Voice    string
	Model    string
	Language string
}

type S3Config struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Region          string
}

const envFile = ".env"

func Load() (*Config, error) {
	return load(viper.New(), envFile)
}

func load(v *viper.Viper, envPath string) (*Config, error) {
	v.SetDefault("SERVER_HOST", "localhost")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 5*time.Minute)
	v.SetDefault("APP_UPLOAD_DIR", "./uploads")
	v.SetDefault("APP_AUDIO_DIR", "./audio")
	v.SetDefault("APP_TEMPLATES_DIR", "./web/templates")
	v.SetDefault("APP_MAX_UPLOAD_SIZE", 16*1024*1024) // 16MB
	v.SetDefault("APP_ALLOWED_FORMATS", []string{"png", "jpg", "jpeg", "gif"})
	v.SetDefault("APP_AUDIO_RETENTION", time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OCR_LANGUAGES", []string{"eng"})
	v.SetDefault("OCR_UPSCALE_MIN_WIDTH", 0)
	v.SetDefault("GRAMMAR_API_URL", "http://localhost:8081")
	v.SetDefault("GRAMMAR_LANGUAGE", "en-US")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_API_BASE", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("TTS_ENGINE", "google")
	v.SetDefault("TTS_API_BASE", "")
	v.SetDefault("TTS_API_KEY", "")
	v.SetDefault("TTS_VOICE", "alloy")
	v.SetDefault("TTS_MODEL", "tts-1")
	v.SetDefault("TTS_LANGUAGE", "en")
	v.SetDefault("S3_ENABLED", false)
	v.SetDefault("S3_ENDPOINT", "http://localhost:9000")
	v.SetDefault("S3_ACCESS_KEY_ID", "minioadmin")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "minioadmin")
	v.SetDefault("S3_USE_SSL", false)
	v.SetDefault("S3_BUCKET_NAME", "audio")
	v.SetDefault("S3_REGION", "us-east-1")

	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			v.SetConfigFile(envPath)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", envPath, err)
			}
		}
	}

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetString("SERVER_PORT"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		App: AppConfig{
			UploadDir:      v.GetString("APP_UPLOAD_DIR"),
			AudioDir:       v.GetString("APP_AUDIO_DIR"),
			TemplatesDir:   v.GetString("APP_TEMPLATES_DIR"),
			MaxUploadSize:  v.GetInt64("APP_MAX_UPLOAD_SIZE"),
			AllowedFormats: normalizeFormats(splitList(v.GetStringSlice("APP_ALLOWED_FORMATS"))),
			AudioRetention: v.GetDuration("APP_AUDIO_RETENTION"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		OCR: OCRConfig{
			Languages:       splitList(v.GetStringSlice("OCR_LANGUAGES")),
			UpscaleMinWidth: v.GetInt("OCR_UPSCALE_MIN_WIDTH"),
		},
		Grammar: GrammarConfig{
			APIURL:   v.GetString("GRAMMAR_API_URL"),
			Language: v.GetString("GRAMMAR_LANGUAGE"),
		},
		Gemini: GeminiConfig{
			APIKey:  v.GetString("GEMINI_API_KEY"),
			APIBase: v.GetString("GEMINI_API_BASE"),
			Model:   v.GetString("GEMINI_MODEL"),
		},
		TTS: TTSConfig{
			Engine:   strings.ToLower(v.GetString("TTS_ENGINE")),
			APIBase:  v.GetString("TTS_API_BASE"),
			APIKey:   v.GetString("TTS_API_KEY"),
			Voice:    v.GetString("TTS_VOICE"),
			Model:    v.GetString("TTS_MODEL"),
			Language: v.GetString("TTS_LANGUAGE"),
		},
		S3: S3Config{
			Enabled:         v.GetBool("S3_ENABLED"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			UseSSL:          v.GetBool("S3_USE_SSL"),
			BucketName:      v.GetString("S3_BUCKET_NAME"),
			Region:          v.GetString("S3_REGION"),
		},
	}

	if err := createDirs(cfg); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return cfg, nil
}

// Address returns the host:port the HTTP server listens on.
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func createDirs(cfg *Config) error {
	dirs := []string{
		cfg.App.UploadDir,
		cfg.App.AudioDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// splitList accepts both real slices and comma separated env values,
// which viper hands back as a single element.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func normalizeFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		out = append(out, strings.ToLower(strings.TrimPrefix(f, ".")))
	}
	return out
}
