package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Groq       GroqConfig       `mapstructure:"groq"`
	Imentiv    ImentivConfig    `mapstructure:"imentiv"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	ElevenLabs ElevenLabsConfig `mapstructure:"elevenlabs"`
	Triage     TriageConfig     `mapstructure:"triage"`
	Assessment AssessmentConfig `mapstructure:"assessment"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Log        LogConfig        `mapstructure:"log"`
	Session    SessionConfig    `mapstructure:"session"`
	Storage    StorageConfig    `mapstructure:"storage"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

type GroqConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ChatModel    string        `mapstructure:"chat_model"`
	WhisperModel string        `mapstructure:"whisper_model"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type ImentivConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	PollTimeout  time.Duration `mapstructure:"poll_timeout"`
}

// ClassifierConfig 两个独立文本分类器的HTTP推理配置
type ClassifierConfig struct {
	Token         string        `mapstructure:"token"`
	DistressURL   string        `mapstructure:"distress_url"`
	SuicideURL    string        `mapstructure:"suicide_url"`
	PositiveLabel string        `mapstructure:"positive_label"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type ElevenLabsConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	VoiceID string        `mapstructure:"voice_id"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TriageConfig 回合处理的功能开关与风险评分参数
type TriageConfig struct {
	SystemPrompt     string  `mapstructure:"system_prompt"`
	MentalScale      float64 `mapstructure:"mental_scale"`
	SuicideThreshold float64 `mapstructure:"suicide_threshold"`
	BoostValue       float64 `mapstructure:"boost_value"`
	WindowSize       int     `mapstructure:"window_size"`
	RiskThreshold    float64 `mapstructure:"risk_threshold"`
	EnableMood       bool    `mapstructure:"enable_mood"`
	EnableSpeech     bool    `mapstructure:"enable_speech"`
}

type AssessmentConfig struct {
	Model            string        `mapstructure:"model"`
	Temperature      float32       `mapstructure:"temperature"`
	MaxTokens        int           `mapstructure:"max_tokens"`
	TopP             float32       `mapstructure:"top_p"`
	FrequencyPenalty float32       `mapstructure:"frequency_penalty"`
	PresencePenalty  float32       `mapstructure:"presence_penalty"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type StorageConfig struct {
	Type      string `mapstructure:"type"`
	DataDir   string `mapstructure:"data_dir"`
	CacheSize int    `mapstructure:"cache_size"`
}

var cfg *Config

func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SOLACE")

	// 布尔开关无法在applyDefaults区分未设置与false，走viper默认值
	viper.SetDefault("triage.enable_mood", true)
	viper.SetDefault("triage.enable_speech", true)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// 配置文件优先，未设置时回退到环境变量
	if cfg.Groq.APIKey == "" {
		cfg.Groq.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if cfg.Imentiv.APIKey == "" {
		cfg.Imentiv.APIKey = os.Getenv("IMENTIV_API_KEY")
	}
	if cfg.Classifier.Token == "" {
		cfg.Classifier.Token = os.Getenv("HF_TOKEN")
	}
	if cfg.ElevenLabs.APIKey == "" {
		cfg.ElevenLabs.APIKey = os.Getenv("ELEVENLABS_API_KEY")
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(c *Config) {
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Groq.ChatModel == "" {
		c.Groq.ChatModel = "llama3-70b-8192"
	}
	if c.Groq.WhisperModel == "" {
		c.Groq.WhisperModel = "whisper-large-v3"
	}
	if c.Groq.Timeout <= 0 {
		c.Groq.Timeout = 90 * time.Second
	}
	if c.Imentiv.BaseURL == "" {
		c.Imentiv.BaseURL = "https://api.imentiv.ai/v1"
	}
	if c.Imentiv.PollInterval <= 0 {
		c.Imentiv.PollInterval = time.Second
	}
	if c.Imentiv.PollTimeout <= 0 {
		c.Imentiv.PollTimeout = 30 * time.Second
	}
	if c.Classifier.PositiveLabel == "" {
		c.Classifier.PositiveLabel = "LABEL_1"
	}
	if c.Classifier.Timeout <= 0 {
		c.Classifier.Timeout = 90 * time.Second
	}
	if c.ElevenLabs.BaseURL == "" {
		c.ElevenLabs.BaseURL = "https://api.elevenlabs.io/v1"
	}
	if c.ElevenLabs.Model == "" {
		c.ElevenLabs.Model = "eleven_turbo_v2"
	}
	if c.ElevenLabs.Timeout <= 0 {
		c.ElevenLabs.Timeout = 90 * time.Second
	}
	if c.Triage.MentalScale == 0 {
		c.Triage.MentalScale = 1.0
	}
	if c.Triage.SuicideThreshold == 0 {
		c.Triage.SuicideThreshold = 0.5
	}
	if c.Triage.BoostValue == 0 {
		c.Triage.BoostValue = 0.8
	}
	if c.Triage.WindowSize <= 0 {
		c.Triage.WindowSize = 5
	}
	if c.Triage.RiskThreshold == 0 {
		c.Triage.RiskThreshold = 0.7
	}
	if c.Assessment.Model == "" {
		c.Assessment.Model = "llama3-70b-8192"
	}
	if c.Assessment.Temperature == 0 {
		c.Assessment.Temperature = 0.1
	}
	if c.Assessment.MaxTokens <= 0 {
		c.Assessment.MaxTokens = 3000
	}
	if c.Assessment.TopP == 0 {
		c.Assessment.TopP = 0.95
	}
	if c.Assessment.Timeout <= 0 {
		c.Assessment.Timeout = 90 * time.Second
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 24 * time.Hour
	}
	if c.Session.CleanupInterval <= 0 {
		c.Session.CleanupInterval = time.Hour
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "./data"
	}
	if c.Storage.CacheSize <= 0 {
		c.Storage.CacheSize = 100
	}
}

func Get() *Config {
	return cfg
}
