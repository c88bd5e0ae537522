package infra

// pdf.go — Boleta PDF generation using go-pdf/fpdf.
// Renders an A4 document with:
//   - Business name header and boleta number
//   - Issue / due dates and customer block
//   - Line-item table (product, quantity, unit price, subtotal)
//   - Observations (if any)
//   - Bold total
//
// The output file is saved to storagePath/boleta_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"gestorcn/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateBoletaPDF renders the printable document for a boleta.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateBoletaPDF(boleta *model.Boleta, storagePath, negocio string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("boleta_%d.pdf", boleta.NumeroBoleta)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, negocio, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, fmt.Sprintf("Boleta N° %d", boleta.NumeroBoleta), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Dates and customer ───────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, "Fecha emisión: "+boleta.FechaBoleta.Format("02/01/2006"), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, "Vencimiento: "+boleta.FechaVencimiento.Format("02/01/2006"), "", 1, "R", false, 0, "")

	if boleta.Cliente != nil {
		pdf.CellFormat(contentW, 6, "Cliente: "+boleta.Cliente.RazonSocial, "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 6, "RUT: "+boleta.Cliente.Rut, "", 1, "L", false, 0, "")
	}
	if boleta.Usuario != nil {
		pdf.CellFormat(contentW, 6, "Vendedor: "+boleta.Usuario.NombreUsuario, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Line-item table ──────────────────────────────────────────────────────
	col1 := contentW * 0.46 // product
	col2 := contentW * 0.14 // quantity
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.20 // subtotal

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Cantidad", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "P. Unitario", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, d := range boleta.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Descripcion
		}
		if d.DescripcionProducto != nil && *d.DescripcionProducto != "" {
			nombre = *d.DescripcionProducto
		}
		pdf.CellFormat(col1, 6, truncarNombre(nombre, 40), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, d.Cantidad.String(), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+d.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+d.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, "$"+boleta.TotalBoleta.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Observations ─────────────────────────────────────────────────────────
	if boleta.Observaciones != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, "Observaciones: "+boleta.Observaciones, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// truncarNombre caps a product name at max runes. Slicing by runes keeps
// accented characters intact.
func truncarNombre(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
