package worker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDeadLetter(t *testing.T) {
	job := Job{Type: "boleta_pdf", Payload: json.RawMessage(`{"numero_boleta":42}`)}

	entry := newDeadLetter(QueueBoletaPDF, job, "render failed")

	assert.Equal(t, QueueBoletaPDF, entry.Queue)
	assert.Equal(t, "boleta_pdf", entry.Type)
	assert.JSONEq(t, `{"numero_boleta":42}`, string(entry.Payload))
	assert.Equal(t, "render failed", entry.Reason)
	assert.WithinDuration(t, time.Now().UTC(), entry.FailedAt, time.Minute)
}

func TestDeadLetterKey(t *testing.T) {
	assert.Equal(t, "dlq:jobs:boleta_pdf", deadLetterKey(QueueBoletaPDF))
	assert.Equal(t, "dlq:jobs:email", deadLetterKey(QueueEmail))
}
