package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"hike-reviews/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram caps message text at 4096 characters
const maxMessageLen = 4096

const helpText = "Commands:\n/start - Start the bot\n/help - Show this help\n\nSend me the url of a hike on hikingupward.com and I will summarize what hikers said about it."

// Bot answers hike URLs sent over Telegram
type Bot struct {
	api     *tgbotapi.BotAPI
	svc     *service.Service
	allowed map[int64]bool
}

// New authorizes against the Bot API.
// An empty allowedUsers list lets everyone use the bot.
func New(token string, svc *service.Service, allowedUsers []int64) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}
	log.Printf("Authorized on account %s\n", api.Self.UserName)

	return &Bot{
		api:     api,
		svc:     svc,
		allowed: allowedSet(allowedUsers),
	}, nil
}

func allowedSet(ids []int64) map[int64]bool {
	allowed := make(map[int64]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	return allowed
}

func (b *Bot) isAllowed(userID int64) bool {
	return len(b.allowed) == 0 || b.allowed[userID]
}

// Run handles updates one at a time until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(b.skipPending())
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			log.Println("Bot stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// skipPending returns the offset that acknowledges every update sent while
// the bot was offline. Offset -1 asks Telegram for the newest one only.
func (b *Bot) skipPending() int {
	pending, err := b.api.GetUpdates(tgbotapi.UpdateConfig{Offset: -1, Limit: 1})
	if err != nil {
		log.Printf("Warning: Failed to skip pending updates: %v\n", err)
		return 0
	}
	offset := nextOffset(pending)
	if offset > 0 {
		log.Printf("Skipped pending updates up to %d\n", offset-1)
	}
	return offset
}

// nextOffset is the first update id after the given batch, or 0 for an empty batch
func nextOffset(updates []tgbotapi.Update) int {
	offset := 0
	for _, u := range updates {
		if u.UpdateID >= offset {
			offset = u.UpdateID + 1
		}
	}
	return offset
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if !b.isAllowed(userID) {
		log.Printf("Unauthorized user attempted to use bot: %d\n", userID)
		b.send(chatID, "Sorry, you are not authorized to use this bot.")
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.send(chatID, "Welcome! Send me the url of a hike on hikingupward.com to get a summary of its reviews.")
		case "help":
			b.send(chatID, helpText)
		default:
			b.send(chatID, "Unknown command. Use /help for available commands.")
		}
		return
	}

	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Printf("Warning: Failed to send typing action: %v\n", err)
	}
	b.send(chatID, reply(ctx, b.svc, msg.Text))
}

// reply computes the answer to a plain text message
func reply(ctx context.Context, svc *service.Service, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "Please send me the url of a hike on hikingupward.com."
	}

	result, err := svc.Summarize(ctx, text)
	if err != nil {
		log.Printf("Warning: Failed to summarize %s: %v\n", text, err)
		return service.Message(err)
	}
	return service.Format(result)
}

func (b *Bot) send(chatID int64, text string) {
	for _, part := range splitMessage(text, maxMessageLen) {
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			log.Printf("Error sending message to chat %d: %v\n", chatID, err)
			return
		}
	}
}

// splitMessage splits a message into chunks of at most maxLen bytes,
// preferring line boundaries and never cutting a UTF-8 sequence
func splitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var parts []string
	var current strings.Builder

	for _, line := range strings.Split(text, "\n") {
		if current.Len() > 0 && current.Len()+len(line)+1 > maxLen {
			parts = append(parts, strings.TrimSuffix(current.String(), "\n"))
			current.Reset()
		}
		// A single line longer than maxLen is cut on rune boundaries
		for len(line) > maxLen {
			cut := maxLen
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = maxLen
			}
			parts = append(parts, line[:cut])
			line = line[cut:]
		}
		current.WriteString(line)
		current.WriteString("\n")
	}

	if current.Len() > 0 {
		parts = append(parts, strings.TrimSuffix(current.String(), "\n"))
	}
	return parts
}
