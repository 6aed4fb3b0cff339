package worker

import "context"

// Redis queues consumed by the worker pool.
const (
	QueueBarcode = "jobs:barcode"
	QueueEmail   = "jobs:email"
)

// Dispatcher enqueues background jobs. A nil dispatcher is accepted by the
// services and drops jobs, keeping unit tests free of redis.
type Dispatcher interface {
	Enqueue(ctx context.Context, queue string, payload any) error
}

// BarcodeJob asks for the Code128 image of a ticket to be rendered and its
// path written back onto the ticket.
type BarcodeJob struct {
	TicketID string `json:"ticket_id"`
	Placa    string `json:"placa"`
}

// EmailJob is a receipt notification for a paid mensualidad.
type EmailJob struct {
	Para    string `json:"para"`
	Asunto  string `json:"asunto"`
	Cuerpo  string `json:"cuerpo"`
}
