package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/royaisolutions/agency-api/internal/infra/integration/llm"
	"github.com/royaisolutions/agency-api/internal/infra/integration/telegram"
)

const salesSystemPrompt = `You are RoyAI, the AI sales assistant for RoyAISolutions. You're friendly, professional, and knowledgeable about our services.

## Our Services:

### 1. Foundation Package - $2,500 (One-Time)
Premium website development including custom design, mobile-first responsive layout, SEO optimization, performance tuning, SSL, contact forms, analytics integration and 30 days of support.

### 2. Growth Engine Package - $997/month + $2,500 Setup
Everything in Foundation plus AI lead generation, automated email/SMS campaigns, CRM integration, AI chatbot, advanced analytics, social media automation, priority support and a monthly consultation.

### 3. Individual Services:
- Web Development: $2,500 one-time
- AI Automation: $997/month
- Lead Generation: $750/month

## Your Tasks:
1. Answer questions about our services clearly and helpfully
2. Qualify leads by understanding their needs
3. Encourage them to fill out the contact form on our website
4. Be concise but informative
5. If asked about pricing, be transparent
6. For complex questions, suggest they book a consultation

Keep responses concise (under 300 words). Be helpful and aim to convert inquiries into leads!`

const fallbackReply = "Thanks for reaching out! I'm having a brief technical moment. Please visit our website or call (346) 298-5038 to learn about our AI automation and lead generation services!"

type AssistantClient interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

type MessengerClient interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// TelegramHandler is the bot webhook. Telegram retries non-200 responses,
// so every processed update answers 200 even when the reply is a fallback.
type TelegramHandler struct {
	Assistant AssistantClient
	Messenger MessengerClient
}

func NewTelegramHandler(assistant AssistantClient, messenger MessengerClient) *TelegramHandler {
	return &TelegramHandler{
		Assistant: assistant,
		Messenger: messenger,
	}
}

func (h *TelegramHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	// Non-text updates (stickers, joins, edits) are acknowledged and dropped.
	if update.Message == nil || update.Message.Text == "" {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	chatID := update.Message.Chat.ID
	userMessage := update.Message.Text
	userName := "Friend"
	if update.Message.From != nil && update.Message.From.FirstName != "" {
		userName = update.Message.From.FirstName
	}

	var reply string
	if userMessage == "/start" {
		reply = welcomeMessage(userName)
	} else {
		reply = h.assistantReply(r.Context(), userName, userMessage)
	}

	if err := h.Messenger.SendMessage(r.Context(), chatID, reply); err != nil {
		log.Printf("telegram send failed for chat %d: %v", chatID, err)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *TelegramHandler) assistantReply(ctx context.Context, userName, userMessage string) string {
	prompt := fmt.Sprintf("Customer %s says: %s", userName, userMessage)

	reply, err := h.Assistant.Complete(ctx, salesSystemPrompt, prompt)
	if err != nil {
		log.Printf("assistant completion failed: %v", err)

		var apiErr *llm.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.Status {
			case http.StatusTooManyRequests:
				return "I'm experiencing high demand right now. Please try again in a moment or visit our website to learn more!"
			case http.StatusPaymentRequired:
				return "Thanks for reaching out! Visit our website to learn about our services, or call us at (346) 298-5038."
			}
		}
		return fallbackReply
	}

	if reply == "" {
		return fallbackReply
	}
	return reply
}

func welcomeMessage(userName string) string {
	return fmt.Sprintf(`Welcome to RoyAISolutions, %s!

I'm RoyAI, your AI sales assistant. I'm here to help you discover how we can automate your business and generate more leads.

*Our Services:*
- Web Development - $2,500
- AI Automation - $997/mo
- Lead Generation - $750/mo

Ask me anything about our services, or type "pricing" to see our packages!

Ready to transform your business? Let's chat!`, userName)
}
