package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"lecture-scribe/log"
)

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type AppConfig struct {
	FfmpegPath string `toml:"ffmpeg_path"`
	// Workers bounds how many videos from one archive are processed at once.
	Workers int    `toml:"workers"`
	TaskDir string `toml:"task_dir"`
}

type OpenaiConfig struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type FasterwhisperConfig struct {
	BinPath string `toml:"bin_path"`
	Model   string `toml:"model"`
}

type TranscribeConfig struct {
	Provider      string              `toml:"provider"` // openai | fasterwhisper
	Language      string              `toml:"language"`
	Openai        OpenaiConfig        `toml:"openai"`
	Fasterwhisper FasterwhisperConfig `toml:"fasterwhisper"`
}

type ExtractConfig struct {
	DefaultPreset string `toml:"default_preset"`
	// Strategy selects the timestamp derivation mode: "segment" (accurate,
	// per-segment start times) or "fulltext" (legacy character-offset
	// estimate, kept for parity with old deployments).
	Strategy string `toml:"strategy"`
}

type QueueConfig struct {
	Enabled       bool   `toml:"enabled"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Concurrency   int    `toml:"concurrency"`
}

type NotifyConfig struct {
	WebhookUrl string `toml:"webhook_url"`
}

type Config struct {
	Server     ServerConfig     `toml:"server"`
	App        AppConfig        `toml:"app"`
	Transcribe TranscribeConfig `toml:"transcribe"`
	Extract    ExtractConfig    `toml:"extract"`
	Queue      QueueConfig      `toml:"queue"`
	Notify     NotifyConfig     `toml:"notify"`
}

var Conf Config

// resolveConfigPath is a variable so tests can point config at a temp dir.
var resolveConfigPath = func() (string, error) {
	return filepath.Join("config", "config.toml"), nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8888,
		},
		App: AppConfig{
			FfmpegPath: "ffmpeg",
			Workers:    2,
			TaskDir:    "tasks",
		},
		Transcribe: TranscribeConfig{
			Provider: "openai",
			Language: "en",
			Openai: OpenaiConfig{
				Model: "whisper-1",
			},
			Fasterwhisper: FasterwhisperConfig{
				BinPath: "faster-whisper",
				Model:   "base",
			},
		},
		Extract: ExtractConfig{
			DefaultPreset: "question-number",
			Strategy:      "segment",
		},
		Queue: QueueConfig{
			RedisAddr:   "localhost:6379",
			Concurrency: 3,
		},
	}
}

// LoadOrCreateConfig loads config.toml, generating a default file when it is
// missing. Returns created=true when a new default config was written.
func LoadOrCreateConfig() (bool, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return false, err
	}

	if _, err = os.Stat(path); os.IsNotExist(err) {
		Conf = defaultConfig()
		if err = SaveConfig(); err != nil {
			return false, err
		}
		if log.GetLogger() != nil {
			log.GetLogger().Info("generated default config", zap.String("path", path))
		}
		return true, nil
	}

	if _, err = toml.DecodeFile(path, &Conf); err != nil {
		return false, err
	}
	applyFallbacks()
	return false, nil
}

// SaveConfig writes the current Conf to disk, creating parent directories.
func SaveConfig() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(Conf)
}

// applyFallbacks fills zero values left by hand-edited config files.
func applyFallbacks() {
	def := defaultConfig()
	if Conf.Server.Host == "" {
		Conf.Server.Host = def.Server.Host
	}
	if Conf.Server.Port == 0 {
		Conf.Server.Port = def.Server.Port
	}
	if Conf.App.FfmpegPath == "" {
		Conf.App.FfmpegPath = def.App.FfmpegPath
	}
	if Conf.App.Workers <= 0 {
		Conf.App.Workers = def.App.Workers
	}
	if Conf.App.TaskDir == "" {
		Conf.App.TaskDir = def.App.TaskDir
	}
	if Conf.Transcribe.Provider == "" {
		Conf.Transcribe.Provider = def.Transcribe.Provider
	}
	if Conf.Extract.DefaultPreset == "" {
		Conf.Extract.DefaultPreset = def.Extract.DefaultPreset
	}
	if Conf.Extract.Strategy == "" {
		Conf.Extract.Strategy = def.Extract.Strategy
	}
	if Conf.Queue.RedisAddr == "" {
		Conf.Queue.RedisAddr = def.Queue.RedisAddr
	}
	if Conf.Queue.Concurrency <= 0 {
		Conf.Queue.Concurrency = def.Queue.Concurrency
	}
}
