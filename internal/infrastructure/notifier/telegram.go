// Package notifier entrega os alertas de operação num canal externo de
// mensagens. O canal é opaco para o motor: uma operação de envio de texto,
// sucesso ou falha.
package notifier

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/alerta"
	"github.com/lucasvrs/baixa-estoque-api/pkg/config"
)

var _ alerta.Notificador = (*TelegramNotifier)(nil)

// TelegramNotifier envia mensagens de texto para o chat dos operadores via
// Bot API.
type TelegramNotifier struct {
	http   *resty.Client
	chatID string
}

// NewTelegramNotifier constrói o notificador.
func NewTelegramNotifier(cfg config.AlertasConfig) *TelegramNotifier {
	http := resty.New().
		SetBaseURL("https://api.telegram.org/bot" + cfg.BotToken).
		SetTimeout(cfg.TimeoutEnvio())
	return &TelegramNotifier{http: http, chatID: cfg.ChatID}
}

// Enviar entrega o texto pré-formatado. Nenhuma resposta estruturada é
// consumida além de sucesso/falha.
func (n *TelegramNotifier) Enviar(ctx context.Context, texto string) error {
	resp, err := n.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"chat_id": n.chatID,
			"text":    texto,
		}).
		Post("/sendMessage")
	if err != nil {
		return fmt.Errorf("enviar mensagem: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("canal de alerta respondeu %s", resp.Status())
	}
	return nil
}
