package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"gestorcn/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailWorker mails a rendered boleta PDF to the customer.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email: payload: %w", err)
	}

	subject := fmt.Sprintf("Boleta N° %d", payload.NumeroBoleta)
	body := fmt.Sprintf("Adjuntamos su boleta N° %d.\n\nGracias por su compra.", payload.NumeroBoleta)
	if err := w.mailer.SendWithAttachment(payload.To, subject, body, payload.PDFPath); err != nil {
		return fmt.Errorf("email: enviar boleta %d a %s: %w", payload.NumeroBoleta, payload.To, err)
	}
	log.Info().Int("numero_boleta", payload.NumeroBoleta).Str("to", payload.To).Msg("boleta emailed")
	return nil
}
