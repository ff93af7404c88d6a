package utils

import "fmt"

const (
	ModeBatch  = "batch"
	ModeServer = "server"

	OutputText = "text"
	OutputJSON = "json"

	DefaultInputPath = "./translations_mt.tsv"
)

// Config is the process configuration read from the environment
type Config struct {
	Mode            string
	InputPath       string
	Output          string
	Grouping        string
	ReferencePolicy string
	Parallel        bool
	LogLevel        string
	Port            string
	Bucket          string
}

// LoadConfig reads the configuration from the environment (and .env)
func LoadConfig() (Config, error) {
	cfg := Config{
		Mode:            GetEnvOrDefault("BLEU_MODE", ModeBatch),
		InputPath:       GetEnvOrDefault("BLEU_INPUT_PATH", DefaultInputPath),
		Output:          GetEnvOrDefault("BLEU_OUTPUT", OutputText),
		Grouping:        GetEnvOrDefault("BLEU_GROUPING", "consecutive"),
		ReferencePolicy: GetEnvOrDefault("BLEU_REFERENCE_POLICY", "summed"),
		Parallel:        GetEnvBool("BLEU_PARALLEL", false),
		LogLevel:        GetEnvOrDefault("LOG_LEVEL", "info"),
		Port:            GetEnvOrDefault("APP_PORT", "8080"),
		Bucket:          GetEnvOrDefault("BLEU_BUCKET", "bleu-corpora"),
	}

	switch cfg.Mode {
	case ModeBatch, ModeServer:
	default:
		return cfg, fmt.Errorf("invalid BLEU_MODE %q", cfg.Mode)
	}
	switch cfg.Output {
	case OutputText, OutputJSON:
	default:
		return cfg, fmt.Errorf("invalid BLEU_OUTPUT %q", cfg.Output)
	}
	return cfg, nil
}
