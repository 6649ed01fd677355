package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/example/elkisamara/internal/models"
)

// TelegramService notifies the shop manager about new orders. Orders
// are confirmed by a manager over the phone, so every checkout lands in
// the admin chat.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// NotifyNewOrder posts a new order with its content snapshot to the
// admin chat.
func (s *TelegramService) NotifyNewOrder(order *models.Order) error {
	if s.adminChatID == "" {
		return nil
	}

	var b strings.Builder
	b.WriteString("\U0001F384 <b>New order</b>\n\n")
	fmt.Fprintf(&b, "Customer: %s %s\n", order.FirstName, order.LastName)
	fmt.Fprintf(&b, "Phone: %s\n", order.Phone)
	if order.BuyingType == models.BuyingTypeDelivery {
		fmt.Fprintf(&b, "Delivery to: %s\n", order.Address)
	} else {
		b.WriteString("Self-pickup\n")
	}
	if order.Comment != "" {
		fmt.Fprintf(&b, "Comment: %s\n", order.Comment)
	}
	b.WriteString("\n<pre>")
	b.WriteString(order.ContentDescription)
	b.WriteString("</pre>")

	return s.SendToAdmin(b.String())
}
