package worker

import (
	"context"

	"github.com/ferrosero91/parking-solupark/internal/infra"
	"github.com/ferrosero91/parking-solupark/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BarcodeWorker renders ticket barcodes and records their storage path.
type BarcodeWorker struct {
	generator *infra.BarcodeGenerator
	tickets   repository.TicketRepository
}

func NewBarcodeWorker(generator *infra.BarcodeGenerator, tickets repository.TicketRepository) *BarcodeWorker {
	return &BarcodeWorker{generator: generator, tickets: tickets}
}

func (w *BarcodeWorker) HandleBarcode(ctx context.Context, job BarcodeJob) error {
	id, err := uuid.Parse(job.TicketID)
	if err != nil {
		return err
	}
	path, err := w.generator.Generate(job.TicketID, job.Placa)
	if err != nil {
		return err
	}
	if err := w.tickets.UpdateBarcodePath(ctx, id, path); err != nil {
		return err
	}
	log.Debug().Str("ticket_id", job.TicketID).Str("path", path).Msg("código de barras generado")
	return nil
}
