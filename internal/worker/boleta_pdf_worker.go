package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"gestorcn/internal/infra"
	"gestorcn/internal/repository"

	"github.com/rs/zerolog/log"
)

// BoletaPDFWorker renders the PDF document of a boleta and, when the job
// carries a destination address, chains an email delivery job.
type BoletaPDFWorker struct {
	repo        repository.BoletaRepository
	dispatcher  *Dispatcher
	storagePath string
	negocio     string
}

func NewBoletaPDFWorker(repo repository.BoletaRepository, dispatcher *Dispatcher, storagePath, negocio string) *BoletaPDFWorker {
	return &BoletaPDFWorker{repo: repo, dispatcher: dispatcher, storagePath: storagePath, negocio: negocio}
}

func (w *BoletaPDFWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload BoletaPDFPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("boleta_pdf: payload: %w", err)
	}

	boleta, err := w.repo.FindByNumero(ctx, payload.NumeroBoleta)
	if err != nil {
		return fmt.Errorf("boleta_pdf: boleta %d: %w", payload.NumeroBoleta, err)
	}

	path, err := infra.GenerateBoletaPDF(boleta, w.storagePath, w.negocio)
	if err != nil {
		return fmt.Errorf("boleta_pdf: render %d: %w", payload.NumeroBoleta, err)
	}
	log.Info().Int("numero_boleta", payload.NumeroBoleta).Str("path", path).Msg("boleta PDF generated")

	if payload.Email != nil && *payload.Email != "" {
		return w.dispatcher.EnqueueEmail(ctx, EmailPayload{
			To:           *payload.Email,
			NumeroBoleta: payload.NumeroBoleta,
			PDFPath:      path,
		})
	}
	return nil
}
