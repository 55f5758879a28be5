package telegram

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"voice-agents/internal/auth"
	"voice-agents/internal/dialog"
	"voice-agents/internal/history"
	"voice-agents/internal/llm"
	"voice-agents/internal/slots"
	"voice-agents/internal/transcript"
)

// Bot is the conversation adapter: it turns Telegram messages into
// typed utterances for the slot-filling tracker and falls back to the
// general-purpose model for everything the tracker does not claim.
// Any transport with a text-in / text-out / handled-flag contract can
// play this role; Telegram is the one wired here.
type Bot struct {
	api          *tgbotapi.BotAPI
	profile      slots.Profile
	tracker      *dialog.Tracker
	authSvc      *auth.Service
	llmClient    llm.Client
	systemPrompt string
	history      *history.Manager
	transcripts  transcript.Recorder
}

func New(botToken string, profile slots.Profile, tracker *dialog.Tracker, authSvc *auth.Service,
	llmClient llm.Client, systemPrompt string, transcripts transcript.Recorder) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:          api,
		profile:      profile,
		tracker:      tracker,
		authSvc:      authSvc,
		llmClient:    llmClient,
		systemPrompt: systemPrompt,
		transcripts:  transcripts,
		history:      history.NewManager(),
	}, nil
}

// Start long-polls updates until ctx is cancelled. Updates arrive on
// one channel and are handled sequentially, which preserves the
// per-session ordering the tracker relies on.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !b.authSvc.IsAllowed(msg.From.ID) {
		log.Printf("unauthorized access attempt by user ID %d (@%s)", msg.From.ID, msg.From.UserName)
		return
	}

	identity := fmt.Sprintf("tg%d", msg.From.ID)
	log.Printf("incoming message from %s (@%s): %q", identity, msg.From.UserName, msg.Text)

	if msg.IsCommand() {
		b.handleCommand(identity, msg)
		return
	}

	store := b.tracker.Store()

	// A completed session never restarts implicitly; a new flow begins
	// only when the next utterance again looks like this profile's
	// intent.
	if sess, ok := store.Get(identity); ok && sess.Complete && slots.LooksLikeIntent(b.profile, msg.Text) {
		store.Reset(identity)
	}

	if store.Active(identity) || slots.LooksLikeIntent(b.profile, msg.Text) {
		reply, handled := b.tracker.HandleUtterance(dialog.Utterance{Identity: identity, Text: msg.Text})
		b.record(identity, msg.Text, reply, handled)
		if reply != "" {
			b.sendMessage(msg.Chat.ID, reply)
			return
		}
		if handled {
			return
		}
	}

	b.fallback(ctx, identity, msg)
}

func (b *Bot) handleCommand(identity string, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, b.profile.Greeting)
	case "reset":
		b.tracker.Store().Reset(identity)
		b.history.Reset(identity)
		b.sendMessage(msg.Chat.ID, "Okay, starting over. "+b.profile.Greeting)
	default:
		b.sendMessage(msg.Chat.ID, "I don't know that command. Try /start or /reset.")
	}
}

// fallback routes the utterance to the general-purpose model with the
// profile's system prompt and the user's rolling history.
func (b *Bot) fallback(ctx context.Context, identity string, msg *tgbotapi.Message) {
	b.history.AppendUser(identity, msg.Text)

	var contextMsgs []llm.Message
	if b.systemPrompt != "" {
		contextMsgs = append(contextMsgs, llm.Message{Role: "system", Content: b.systemPrompt})
	}
	contextMsgs = append(contextMsgs, b.history.Get(identity)...)

	resp, err := b.llmClient.Generate(ctx, contextMsgs)
	if err != nil {
		log.Printf("failed to generate fallback reply: %v", err)
		b.sendMessage(msg.Chat.ID, "Sorry, something went wrong.")
		return
	}

	b.history.AppendAssistant(identity, resp.Content)
	log.Printf("fallback reply [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
		resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)

	b.record(identity, msg.Text, resp.Content, false)
	b.sendMessage(msg.Chat.ID, resp.Content)
}

func (b *Bot) record(identity, utterance, reply string, handled bool) {
	if b.transcripts == nil {
		return
	}
	err := b.transcripts.Append(transcript.Event{
		Timestamp: time.Now().UTC(),
		SessionID: identity,
		Agent:     b.profile.Name,
		Utterance: utterance,
		Reply:     reply,
		Handled:   handled,
	})
	if err != nil {
		log.Printf("failed to record transcript event: %v", err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
