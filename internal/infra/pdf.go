package infra

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/go-pdf/fpdf"
)

// ReciboPDF renders thermal-printer sized exit receipts.
type ReciboPDF struct{}

func NewReciboPDF() *ReciboPDF { return &ReciboPDF{} }

// Generar builds the receipt for a settled ticket. Open tickets produce an
// entry stub without amounts.
func (r *ReciboPDF) Generar(t *model.Ticket, p *model.Parqueadero) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: 80, Ht: 160},
	})
	pdf.SetMargins(5, 5, 5)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(70, 6, tr(p.Empresa), "", 1, "C", false, 0, "")
	if p.NIT != nil {
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(70, 4, tr("NIT: "+*p.NIT), "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	linea := func(etiqueta, valor string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(25, 5, tr(etiqueta), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(45, 5, tr(valor), "", 1, "L", false, 0, "")
	}

	linea("Placa:", t.Placa)
	if t.Categoria != nil {
		linea("Categoría:", t.Categoria.Nombre)
	}
	linea("Entrada:", t.HoraEntrada.Format("2006-01-02 15:04"))

	if t.HoraSalida != nil {
		linea("Salida:", t.HoraSalida.Format("2006-01-02 15:04"))
		d := t.HoraSalida.Sub(t.HoraEntrada)
		linea("Tiempo:", fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60))
		if t.MedioPago != nil {
			linea("Pago:", t.MedioPago.Nombre)
		}
		if t.MontoPagado != nil {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(70, 7, tr("TOTAL: $"+t.MontoPagado.StringFixed(2)), "T", 1, "C", false, 0, "")
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(70, 4, tr("Gracias por su visita"), "", 1, "C", false, 0, "")
	pdf.CellFormat(70, 4, time.Now().Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generando el recibo: %w", err)
	}
	return buf.Bytes(), nil
}
