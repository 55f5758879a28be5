package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"voice-agents/internal/auth"
	"voice-agents/internal/config"
	"voice-agents/internal/dialog"
	"voice-agents/internal/llm"
	"voice-agents/internal/records"
	"voice-agents/internal/reports"
	"voice-agents/internal/slots"
	"voice-agents/internal/telegram"
	"voice-agents/internal/transcript"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	profile := slots.WellnessProfile()

	var allowRepo auth.Repository
	if cfg.AllowlistFilePath != "" {
		repo, err := auth.NewFileRepository(cfg.AllowlistFilePath)
		if err != nil {
			log.Printf("failed to init allowlist repo: %v", err)
		} else {
			allowRepo = repo
		}
	}
	authSvc, err := auth.NewWithRepo(allowRepo, cfg.AllowedUsers)
	if err != nil {
		log.Fatalf("failed to init auth: %v", err)
	}

	factory := &llm.Factory{
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
	llmClient, err := factory.CreateClient(cfg.LLMProvider, cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	writer, err := records.NewFileWriter(cfg.RecordsDir, profile.FilePrefix)
	if err != nil {
		log.Fatalf("failed to init records writer: %v", err)
	}

	store := dialog.NewStore(profile.Schema)
	tracker := dialog.NewTracker(profile, store, writer, cfg.AutoSave)

	var rec transcript.Recorder
	if cfg.TranscriptLogPath != "" {
		fr, err := transcript.NewFileRecorder(cfg.TranscriptLogPath)
		if err != nil {
			log.Printf("failed to init transcript recorder: %v", err)
		} else {
			rec = fr
		}
	}

	systemPrompt := profile.SystemPrompt
	if s := readTrim(cfg.SystemPromptPath); s != "" {
		systemPrompt = s
	}

	if cfg.DailyReport {
		rep := reports.New(cfg.RecordsDir)
		if err := rep.Start(); err != nil {
			log.Printf("failed to start reporter: %v", err)
		} else {
			defer rep.Stop()
		}
	}

	bot, err := telegram.New(cfg.TelegramBotToken, profile, tracker, authSvc, llmClient, systemPrompt, rec)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("wellness agent started (auto-save=%v, records=%s)", cfg.AutoSave, cfg.RecordsDir)
	bot.Start(ctx)
}

func readTrim(path string) string {
	if path == "" {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
