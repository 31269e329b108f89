package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	reserbox "github.com/reserbox/reserbox"
)

// WhatsAppConfig holds the Meta Cloud API credentials. Any empty field
// disables the channel.
type WhatsAppConfig struct {
	Token         string
	PhoneNumberID string
	NotifyPhone   string
	BaseURL       string
}

const defaultGraphURL = "https://graph.facebook.com/v18.0"

// WhatsApp sends the operator alert through the Meta Cloud API.
type WhatsApp struct {
	cfg    WhatsAppConfig
	client *http.Client
	log    *zap.SugaredLogger
}

// NewWhatsApp builds the WhatsApp notifier, or the no-op notifier when the
// channel is not fully configured. Missing credentials are a normal
// deployment state, not an error.
func NewWhatsApp(cfg WhatsAppConfig, log *zap.SugaredLogger) Notifier {
	if cfg.Token == "" || cfg.PhoneNumberID == "" || cfg.NotifyPhone == "" {
		log.Infow("notify", "status", "whatsapp not configured, notifications disabled")
		return Nop{}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGraphURL
	}
	return &WhatsApp{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

type textMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

func (w *WhatsApp) Notify(ctx context.Context, lead reserbox.Lead) error {
	msg := textMessage{
		MessagingProduct: "whatsapp",
		To:               w.cfg.NotifyPhone,
		Type:             "text",
	}
	msg.Text.Body = LeadMessage(lead)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding whatsapp message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", w.cfg.BaseURL, w.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api status %d: %s", resp.StatusCode, detail)
	}

	w.log.Infow("notify", "status", "whatsapp notification sent", "lead_id", lead.ID)
	return nil
}

// LeadMessage formats the operator alert for a new lead.
func LeadMessage(lead reserbox.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚀 *NUEVO LEAD RESERBOX*\n\n")
	fmt.Fprintf(&b, "👤 *%s*\n📱 %s\n📧 %s\n\n", lead.Name, lead.Phone, lead.Email)
	fmt.Fprintf(&b, "🏢 *Negocio:* %s\n📍 %s\n🏷️ %s\n👥 %s\n\n",
		lead.BusinessName,
		orDefault(lead.City, "Sin ciudad"),
		lead.Industry,
		orDefault(lead.EmployeeCount, "No especificado"),
	)
	fmt.Fprintf(&b, "💰 *Plan:* %s\n📣 Fuente: %s\n",
		lead.Plan,
		orDefault(lead.HowFound, "No especificado"),
	)
	if lead.Message != "" {
		fmt.Fprintf(&b, "\n💬 Mensaje: %s\n", lead.Message)
	}
	b.WriteString("\n_Contactar lo antes posible!_")
	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
