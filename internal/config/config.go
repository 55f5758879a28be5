package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string  `env:"TELEGRAM_BOT_TOKEN,required"`
	AllowedUsers     []int64 `env:"ALLOWED_USERS" envSeparator:":"`

	// LLM fallback settings
	LLMProvider      string `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`
	OpenAIModel      string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string `env:"YANDEX_FOLDER_ID"`

	// Prompts
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH"`

	// Completion policy: save immediately when every slot is filled,
	// or ask for an explicit yes/no first.
	AutoSave bool `env:"AUTO_SAVE" envDefault:"true"`

	// Storage
	RecordsDir        string `env:"RECORDS_DIR" envDefault:"data/records"`
	TranscriptLogPath string `env:"TRANSCRIPT_LOG_PATH" envDefault:"logs/transcript.jsonl"`
	AllowlistFilePath string `env:"ALLOWLIST_FILE_PATH"`

	// Reporting
	DailyReport bool `env:"DAILY_REPORT" envDefault:"true"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
