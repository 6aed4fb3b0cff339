package infra

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// BarcodeGenerator renders Code128 PNGs for ticket identification. Cashiers
// scan them at exit to look the ticket up when the plate is hard to read.
type BarcodeGenerator struct {
	dir string
}

func NewBarcodeGenerator(dir string) (*BarcodeGenerator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creando el directorio de códigos de barras: %w", err)
	}
	return &BarcodeGenerator{dir: dir}, nil
}

// Generate writes the PNG for the given ticket ID and returns its path.
func (g *BarcodeGenerator) Generate(ticketID, placa string) (string, error) {
	code, err := code128.Encode(ticketID)
	if err != nil {
		return "", fmt.Errorf("codificando el ticket %s: %w", ticketID, err)
	}
	scaled, err := barcode.Scale(code, 400, 120)
	if err != nil {
		return "", fmt.Errorf("escalando el código de barras: %w", err)
	}

	path := filepath.Join(g.dir, fmt.Sprintf("%s-%s.png", placa, ticketID))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := png.Encode(f, scaled); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("escribiendo el png: %w", err)
	}
	return path, nil
}
