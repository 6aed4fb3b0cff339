package worker

import (
	"context"

	"github.com/ferrosero91/parking-solupark/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailWorker delivers queued notifications through SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) HandleEmail(ctx context.Context, job EmailJob) error {
	if !w.mailer.Enabled() {
		log.Debug().Str("para", job.Para).Msg("smtp no configurado, correo descartado")
		return nil
	}
	if err := w.mailer.Send(job.Para, job.Asunto, job.Cuerpo); err != nil {
		return err
	}
	log.Debug().Str("para", job.Para).Msg("correo enviado")
	return nil
}
