package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config stores runtime configuration for the recording booth.
type Config struct {
	Corpus  CorpusConfig
	Audio   AudioConfig
	Rules   RulesConfig
	Session SessionConfig
	Storage StorageConfig
}

type CorpusConfig struct {
	URL          string
	FetchTimeout time.Duration
}

type AudioConfig struct {
	RecorderCommand string
	InputFormat     string
	InputDevice     string
	SampleRate      int
	Channels        int
}

type RulesConfig struct {
	Path           string
	IterationLimit int
}

type SessionConfig struct {
	DrawSize    int
	CommitLimit int
	ChunkSize   int
}

type StorageConfig struct {
	Bucket      string
	DatasetRoot string
	SubmitDelay time.Duration
}

// Load resolves configuration from environment variables and sensible defaults.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, errors.New("could not determine home directory")
	}

	defaultRules := filepath.Join(home, ".config", "promptbooth", "prompt.rules")
	rulesPath := strings.TrimSpace(os.Getenv("PROMPTBOOTH_RULES_FILE"))
	if rulesPath == "" {
		rulesPath = firstExisting(defaultRules)
	}

	cfg := Config{
		Corpus: CorpusConfig{
			URL:          strings.TrimSpace(os.Getenv("PROMPTBOOTH_CORPUS_URL")),
			FetchTimeout: time.Duration(envOrDefaultInt("PROMPTBOOTH_CORPUS_TIMEOUT_MS", 10000)) * time.Millisecond,
		},
		Audio: AudioConfig{
			RecorderCommand: envOrDefault("PROMPTBOOTH_FFMPEG_COMMAND", "ffmpeg"),
			InputFormat:     envOrDefault("PROMPTBOOTH_AUDIO_INPUT_FORMAT", "pulse"),
			InputDevice:     envOrDefault("PROMPTBOOTH_AUDIO_INPUT_DEVICE", "default"),
			SampleRate:      envOrDefaultInt("PROMPTBOOTH_SAMPLE_RATE", 16000),
			Channels:        envOrDefaultInt("PROMPTBOOTH_CHANNELS", 1),
		},
		Rules: RulesConfig{
			Path:           rulesPath,
			IterationLimit: envOrDefaultInt("PROMPTBOOTH_RULE_ITERATION_LIMIT", 30),
		},
		Session: SessionConfig{
			DrawSize:    envOrDefaultInt("PROMPTBOOTH_DRAW_SIZE", 20),
			CommitLimit: envOrDefaultInt("PROMPTBOOTH_COMMIT_LIMIT", 5),
			ChunkSize:   envOrDefaultInt("PROMPTBOOTH_AUDIO_CHUNK_SIZE", 4096),
		},
		Storage: StorageConfig{
			Bucket:      strings.TrimSpace(os.Getenv("PROMPTBOOTH_GCS_BUCKET")),
			DatasetRoot: envOrDefault("PROMPTBOOTH_DATASET_ROOT", "uoh-asr"),
			SubmitDelay: time.Duration(envOrDefaultInt("PROMPTBOOTH_SUBMIT_DELAY_MS", 1500)) * time.Millisecond,
		},
	}

	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 16000
	}
	if cfg.Audio.Channels <= 0 {
		cfg.Audio.Channels = 1
	}
	if cfg.Rules.IterationLimit <= 0 {
		cfg.Rules.IterationLimit = 30
	}
	if cfg.Session.DrawSize <= 0 {
		cfg.Session.DrawSize = 20
	}
	if cfg.Session.CommitLimit <= 0 {
		cfg.Session.CommitLimit = 5
	}
	if cfg.Session.ChunkSize < 256 {
		cfg.Session.ChunkSize = 4096
	}
	if cfg.Storage.SubmitDelay < 0 {
		cfg.Storage.SubmitDelay = 0
	}

	return cfg, nil
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
