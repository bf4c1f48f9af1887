package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type TelemetryConfig struct {
	LogLevel       string `yaml:"log_level"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
	OTLPInsecure   bool   `yaml:"otlp_insecure"`
	PrometheusBind string `yaml:"prometheus_bind"`
}

type HTTPConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type Config struct {
	RuntimeName string            `yaml:"runtime_name"`
	Environment string            `yaml:"environment"`
	HTTP        HTTPConfig        `yaml:"http"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Bus         BusConfig         `yaml:"bus"`
	ASR         ASRConfig         `yaml:"asr"`
	Attribution AttributionConfig `yaml:"attribution"`
	Interview   InterviewConfig   `yaml:"interview"`
	Project     ProjectConfig     `yaml:"project"`
	Archive     ArchiveConfig     `yaml:"archive"`
	Worker      WorkerConfig      `yaml:"worker"`
}

type BusConfig struct {
	Embedded       bool     `yaml:"embedded"`
	Port           int      `yaml:"port"`
	StoreDir       string   `yaml:"store_dir"`
	Servers        []string `yaml:"servers"`
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	Token          string   `yaml:"token"`
	TLSInsecure    bool     `yaml:"tls_insecure"`
	ConnectTimeout int      `yaml:"connect_timeout_ms"`
}

type ASRConfig struct {
	Mode            string  `yaml:"mode"` // mock, exec, http
	Command         string  `yaml:"command"`
	Endpoint        string  `yaml:"endpoint"`
	Model           string  `yaml:"model"`
	Language        string  `yaml:"language"`
	BeamSize        int     `yaml:"beam_size"`
	Temperature     float64 `yaml:"temperature"`
	VADFilter       bool    `yaml:"vad_filter"`
	VADMinSilenceMS int     `yaml:"vad_min_silence_ms"`
	TimeoutMS       int     `yaml:"timeout_ms"`
}

type AttributionConfig struct {
	SilenceThreshold float64 `yaml:"silence_threshold"`
	MinSpeakerTime   float64 `yaml:"min_speaker_time"`
}

type InterviewConfig struct {
	Interviewer string `yaml:"interviewer"`
	Participant string `yaml:"participant"`
	Language    string `yaml:"language"`
	Type        string `yaml:"type"`
}

type ProjectConfig struct {
	OutputDir string   `yaml:"output_dir"`
	CopyAudio bool     `yaml:"copy_audio"`
	Formats   []string `yaml:"formats"`
}

type ArchiveConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Path          string `yaml:"path"`
	RetentionMode string `yaml:"retention_mode"`
	RetentionDays int    `yaml:"retention_days"`
	MaxInterviews int    `yaml:"max_interviews"`
	VacuumOnStart bool   `yaml:"vacuum_on_start"`
}

type WorkerConfig struct {
	Enabled        bool `yaml:"enabled"`
	MaxConcurrency int  `yaml:"max_concurrency"`
	JobTimeoutMS   int  `yaml:"job_timeout_ms"`
}

func Default() Config {
	return Config{
		RuntimeName: "scriven-runtime",
		Environment: "development",
		HTTP: HTTPConfig{
			Bind: "0.0.0.0",
			Port: 8080,
		},
		Telemetry: TelemetryConfig{
			LogLevel:       "info",
			OTLPEndpoint:   "",
			OTLPInsecure:   true,
			PrometheusBind: ":9091",
		},
		Bus: BusConfig{
			Embedded:       true,
			Port:           4222,
			StoreDir:       "./data/nats",
			Servers:        []string{"nats://localhost:4222"},
			ConnectTimeout: 2000,
		},
		ASR: ASRConfig{
			Mode:            "mock",
			Model:           "large-v3",
			Language:        "da",
			BeamSize:        5,
			VADFilter:       true,
			VADMinSilenceMS: 500,
			TimeoutMS:       600000,
		},
		Attribution: AttributionConfig{
			SilenceThreshold: 1.2,
			MinSpeakerTime:   4.0,
		},
		Interview: InterviewConfig{
			Interviewer: "Interviewer",
			Participant: "Deltager",
			Language:    "da",
			Type:        "semi-struktureret",
		},
		Project: ProjectConfig{
			OutputDir: "./interviews",
			CopyAudio: true,
			Formats:   []string{"text", "markdown", "json"},
		},
		Archive: ArchiveConfig{
			Enabled:       true,
			Path:          "./data/scriven-archive.db",
			RetentionMode: "persistent",
			RetentionDays: 90,
			MaxInterviews: 10000,
		},
		Worker: WorkerConfig{
			Enabled:        false,
			MaxConcurrency: 2,
			JobTimeoutMS:   900000,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.RuntimeName, "SCRIVEN_RUNTIME_NAME")
	overrideString(&cfg.Environment, "SCRIVEN_RUNTIME_ENVIRONMENT")
	overrideString(&cfg.HTTP.Bind, "SCRIVEN_HTTP_BIND")
	overrideInt(&cfg.HTTP.Port, "SCRIVEN_HTTP_PORT")
	overrideString(&cfg.Telemetry.LogLevel, "SCRIVEN_TELEMETRY_LOG_LEVEL")
	overrideString(&cfg.Telemetry.OTLPEndpoint, "SCRIVEN_TELEMETRY_OTLP_ENDPOINT")
	overrideBool(&cfg.Telemetry.OTLPInsecure, "SCRIVEN_TELEMETRY_OTLP_INSECURE")
	overrideString(&cfg.Telemetry.PrometheusBind, "SCRIVEN_TELEMETRY_PROMETHEUS_BIND")
	overrideBool(&cfg.Bus.Embedded, "SCRIVEN_BUS_EMBEDDED")
	overrideInt(&cfg.Bus.Port, "SCRIVEN_BUS_PORT")
	overrideString(&cfg.Bus.StoreDir, "SCRIVEN_BUS_STORE_DIR")
	overrideStringSlice(&cfg.Bus.Servers, "SCRIVEN_BUS_SERVERS")
	overrideString(&cfg.Bus.Username, "SCRIVEN_BUS_USERNAME")
	overrideString(&cfg.Bus.Password, "SCRIVEN_BUS_PASSWORD")
	overrideString(&cfg.Bus.Token, "SCRIVEN_BUS_TOKEN")
	overrideBool(&cfg.Bus.TLSInsecure, "SCRIVEN_BUS_TLS_INSECURE")
	overrideInt(&cfg.Bus.ConnectTimeout, "SCRIVEN_BUS_CONNECT_TIMEOUT_MS")
	overrideString(&cfg.ASR.Mode, "SCRIVEN_ASR_MODE")
	overrideString(&cfg.ASR.Command, "SCRIVEN_ASR_COMMAND")
	overrideString(&cfg.ASR.Endpoint, "SCRIVEN_ASR_ENDPOINT")
	overrideString(&cfg.ASR.Model, "SCRIVEN_ASR_MODEL")
	overrideString(&cfg.ASR.Language, "SCRIVEN_ASR_LANGUAGE")
	overrideInt(&cfg.ASR.BeamSize, "SCRIVEN_ASR_BEAM_SIZE")
	overrideFloat(&cfg.ASR.Temperature, "SCRIVEN_ASR_TEMPERATURE")
	overrideBool(&cfg.ASR.VADFilter, "SCRIVEN_ASR_VAD_FILTER")
	overrideInt(&cfg.ASR.VADMinSilenceMS, "SCRIVEN_ASR_VAD_MIN_SILENCE_MS")
	overrideInt(&cfg.ASR.TimeoutMS, "SCRIVEN_ASR_TIMEOUT_MS")
	overrideFloat(&cfg.Attribution.SilenceThreshold, "SCRIVEN_ATTRIBUTION_SILENCE_THRESHOLD")
	overrideFloat(&cfg.Attribution.MinSpeakerTime, "SCRIVEN_ATTRIBUTION_MIN_SPEAKER_TIME")
	overrideString(&cfg.Interview.Interviewer, "SCRIVEN_INTERVIEW_INTERVIEWER")
	overrideString(&cfg.Interview.Participant, "SCRIVEN_INTERVIEW_PARTICIPANT")
	overrideString(&cfg.Interview.Language, "SCRIVEN_INTERVIEW_LANGUAGE")
	overrideString(&cfg.Interview.Type, "SCRIVEN_INTERVIEW_TYPE")
	overrideString(&cfg.Project.OutputDir, "SCRIVEN_PROJECT_OUTPUT_DIR")
	overrideBool(&cfg.Project.CopyAudio, "SCRIVEN_PROJECT_COPY_AUDIO")
	overrideStringSlice(&cfg.Project.Formats, "SCRIVEN_PROJECT_FORMATS")
	overrideBool(&cfg.Archive.Enabled, "SCRIVEN_ARCHIVE_ENABLED")
	overrideString(&cfg.Archive.Path, "SCRIVEN_ARCHIVE_PATH")
	overrideString(&cfg.Archive.RetentionMode, "SCRIVEN_ARCHIVE_RETENTION_MODE")
	overrideInt(&cfg.Archive.RetentionDays, "SCRIVEN_ARCHIVE_RETENTION_DAYS")
	overrideInt(&cfg.Archive.MaxInterviews, "SCRIVEN_ARCHIVE_MAX_INTERVIEWS")
	overrideBool(&cfg.Archive.VacuumOnStart, "SCRIVEN_ARCHIVE_VACUUM_ON_START")
	overrideBool(&cfg.Worker.Enabled, "SCRIVEN_WORKER_ENABLED")
	overrideInt(&cfg.Worker.MaxConcurrency, "SCRIVEN_WORKER_MAX_CONCURRENCY")
	overrideInt(&cfg.Worker.JobTimeoutMS, "SCRIVEN_WORKER_JOB_TIMEOUT_MS")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideStringSlice(target *[]string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		parts := strings.Split(value, ",")
		var trimmed []string
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			*target = trimmed
		}
	}
}

func overrideFloat(target *float64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	if cfg.RuntimeName == "" {
		return errors.New("runtime_name must not be empty")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return errors.New("http.port must be between 1 and 65535")
	}
	if cfg.Bus.Embedded {
		if cfg.Bus.Port <= 0 || cfg.Bus.Port > 65535 {
			return errors.New("bus.port must be between 1 and 65535 when embedded mode is enabled")
		}
		if cfg.Bus.StoreDir == "" {
			return errors.New("bus.store_dir must not be empty when embedded mode is enabled")
		}
	} else {
		if len(cfg.Bus.Servers) == 0 {
			return errors.New("bus.servers must not be empty when embedded mode is disabled")
		}
	}
	switch cfg.ASR.Mode {
	case "mock", "exec", "http":
		// ok
	default:
		return errors.New("asr.mode must be one of mock|exec|http")
	}
	if cfg.ASR.Mode == "exec" && cfg.ASR.Command == "" {
		return errors.New("asr.command must be set when mode=exec")
	}
	if cfg.ASR.Mode == "http" && cfg.ASR.Endpoint == "" {
		return errors.New("asr.endpoint must be set when mode=http")
	}
	if cfg.ASR.Language == "" {
		return errors.New("asr.language must not be empty")
	}
	if cfg.ASR.BeamSize < 0 {
		return errors.New("asr.beam_size must be >= 0")
	}
	if cfg.ASR.TimeoutMS <= 0 {
		return errors.New("asr.timeout_ms must be positive")
	}
	if cfg.Attribution.SilenceThreshold < 0 {
		return errors.New("attribution.silence_threshold must be >= 0")
	}
	if cfg.Attribution.MinSpeakerTime < 0 {
		return errors.New("attribution.min_speaker_time must be >= 0")
	}
	if cfg.Project.OutputDir == "" {
		return errors.New("project.output_dir must not be empty")
	}
	if len(cfg.Project.Formats) == 0 {
		return errors.New("project.formats must not be empty")
	}
	for _, f := range cfg.Project.Formats {
		switch f {
		case "text", "markdown", "json":
			// ok
		default:
			return fmt.Errorf("project.formats contains unknown format %q (text|markdown|json)", f)
		}
	}
	if cfg.Archive.Enabled {
		if cfg.Archive.Path == "" {
			return errors.New("archive.path must not be empty when archive is enabled")
		}
		switch cfg.Archive.RetentionMode {
		case "ephemeral", "days", "persistent":
			// ok
		default:
			return errors.New("archive.retention_mode must be one of ephemeral|days|persistent")
		}
		if cfg.Archive.RetentionDays < 0 {
			return errors.New("archive.retention_days must be >= 0")
		}
		if cfg.Archive.MaxInterviews < 0 {
			return errors.New("archive.max_interviews must be >= 0")
		}
	}
	if cfg.Worker.Enabled {
		if cfg.Worker.MaxConcurrency <= 0 {
			return errors.New("worker.max_concurrency must be >= 1")
		}
		if cfg.Worker.JobTimeoutMS <= 0 {
			return errors.New("worker.job_timeout_ms must be positive")
		}
	}
	if cfg.Telemetry.PrometheusBind == "" {
		return errors.New("telemetry.prometheus_bind must not be empty")
	}
	return nil
}
