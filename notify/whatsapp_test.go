package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	reserbox "github.com/reserbox/reserbox"
)

func testLead() reserbox.Lead {
	return reserbox.Lead{
		ID:           "lead-1",
		Name:         "María González",
		Email:        "maria@test.com",
		Phone:        "3001234567",
		BusinessName: "Salón Glamour",
		Industry:     "belleza",
		Plan:         "profesional",
		Status:       reserbox.StatusNew,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestNewWhatsAppWithoutConfigIsNop(t *testing.T) {
	log := zap.NewNop().Sugar()

	n := NewWhatsApp(WhatsAppConfig{}, log)
	_, ok := n.(Nop)
	assert.True(t, ok)

	n = NewWhatsApp(WhatsAppConfig{Token: "tok", PhoneNumberID: "123"}, log)
	_, ok = n.(Nop)
	assert.True(t, ok)

	require.NoError(t, n.Notify(context.Background(), testLead()))
}

func TestWhatsAppNotify(t *testing.T) {
	var got textMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/123/messages", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWhatsApp(WhatsAppConfig{
		Token:         "tok",
		PhoneNumberID: "123",
		NotifyPhone:   "573009998877",
		BaseURL:       srv.URL,
	}, zap.NewNop().Sugar())

	require.NoError(t, n.Notify(context.Background(), testLead()))
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "573009998877", got.To)
	assert.Contains(t, got.Text.Body, "NUEVO LEAD RESERBOX")
	assert.Contains(t, got.Text.Body, "María González")
}

func TestWhatsAppNotifyAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewWhatsApp(WhatsAppConfig{
		Token:         "tok",
		PhoneNumberID: "123",
		NotifyPhone:   "573009998877",
		BaseURL:       srv.URL,
	}, zap.NewNop().Sugar())

	err := n.Notify(context.Background(), testLead())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestLeadMessageDefaults(t *testing.T) {
	lead := testLead()
	msg := LeadMessage(lead)
	assert.Contains(t, msg, "Sin ciudad")
	assert.Contains(t, msg, "No especificado")
	assert.NotContains(t, msg, "Mensaje:")

	lead.City = "Bogotá"
	lead.Message = "Quiero una demo"
	msg = LeadMessage(lead)
	assert.Contains(t, msg, "Bogotá")
	assert.Contains(t, msg, "Mensaje: Quiero una demo")
}
