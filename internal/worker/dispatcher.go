package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const (
	QueueBoletaPDF = "jobs:boleta_pdf"
	QueueEmail     = "jobs:email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// BoletaPDFPayload asks a worker to render the PDF for one boleta and,
// when Email is set, to mail it afterwards.
type BoletaPDFPayload struct {
	NumeroBoleta int     `json:"numero_boleta"`
	Email        *string `json:"email,omitempty"`
}

// EmailPayload asks a worker to deliver an already-rendered boleta PDF.
type EmailPayload struct {
	To           string `json:"to"`
	NumeroBoleta int    `json:"numero_boleta"`
	PDFPath      string `json:"pdf_path"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueBoletaPDF pushes a PDF rendering job to Redis.
func (d *Dispatcher) EnqueueBoletaPDF(ctx context.Context, payload BoletaPDFPayload) error {
	return d.enqueue(ctx, QueueBoletaPDF, "boleta_pdf", payload)
}

// EnqueueEmail pushes a delivery job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}
