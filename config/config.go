package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

// OpenAIConfig holds the settings for the external text-generation client.
// The model and temperature are fixed per deployment.
type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

// NarrativeConfig tunes narrative parsing and prompting.
type NarrativeConfig struct {
	// MaxBullets is the highest accepted leading number in a numbered list
	// line of a generation response; lines numbered beyond it are discarded.
	MaxBullets int `mapstructure:"max_bullets"`
	// DefaultPrompt is the generation template used when a profession has no
	// custom prompt. It may contain the {category}, {profession} and
	// {skill_set} tokens.
	DefaultPrompt string `mapstructure:"default_prompt"`
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		// DSN is "memory" (or empty) for an in-memory SQLite database, or a
		// file path for a file-based one.
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Narrative NarrativeConfig `mapstructure:"narrative"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// DefaultNarrativePrompt is the stock template used when neither the config
// file nor the profession supplies one.
const DefaultNarrativePrompt = "List 3 strengths and 3 improvements related to {category} in the {profession} " +
	"discipline for a person who is 1 year in the industry and has the following assessment results: {skill_set} " +
	"Make a direct communication, do not include the assessment score in the answer. " +
	"Use a direct tone understandable for non-native speakers"

// LoadConfig loads configuration from file and environment variables.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config") // For running from locations like tests

	viper.SetDefault("server.port", "4000")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("openai.model", "gpt-4")
	viper.SetDefault("openai.temperature", 1.0)
	viper.SetDefault("narrative.max_bullets", 15)
	viper.SetDefault("narrative.default_prompt", DefaultNarrativePrompt)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		AppConfig.OpenAI.APIKey = key
		log.Println("INFO: [Config] Loaded OpenAI API key from environment variable OPENAI_API_KEY.")
	}
	if AppConfig.OpenAI.APIKey == "" {
		log.Println("WARN: [Config] OpenAI API key is not set. Narrative enrichment calls will fail until it is provided.")
	}

	if AppConfig.Narrative.MaxBullets <= 0 {
		log.Printf("WARN: [Config] narrative.max_bullets=%d is invalid, falling back to 15.", AppConfig.Narrative.MaxBullets)
		AppConfig.Narrative.MaxBullets = 15
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}
