package infra

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"gestorcn/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBoletaPDF(t *testing.T) {
	dir := t.TempDir()
	desc := "Carbon vegetal premium"

	boleta := &model.Boleta{
		NumeroBoleta:     42,
		FechaBoleta:      time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		FechaVencimiento: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		TotalBoleta:      decimal.RequireFromString("25000"),
		Observaciones:    "Entregar en bodega 2",
		Cliente: &model.Cliente{
			Rut:         "11111111-1",
			RazonSocial: "Comercial Andes Ltda",
		},
		Usuario: &model.Usuario{NombreUsuario: "vendedor1"},
		Detalles: []model.DetalleBoleta{
			{
				Cantidad:       decimal.RequireFromString("2"),
				PrecioUnitario: decimal.RequireFromString("12500"),
				Subtotal:       decimal.RequireFromString("25000"),
				Producto:       &model.Producto{Descripcion: "Carbon 15kg"},
			},
			{
				Cantidad:            decimal.RequireFromString("0.5"),
				PrecioUnitario:      decimal.RequireFromString("1000"),
				Subtotal:            decimal.RequireFromString("500"),
				DescripcionProducto: &desc,
			},
		},
	}

	path, err := GenerateBoletaPDF(boleta, dir, "Cerro Negro")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "boleta_42.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 500, "rendered document should not be trivially small")
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestTruncarNombre(t *testing.T) {
	corto := "Carbon 15kg"
	assert.Equal(t, corto, truncarNombre(corto, 40))

	// accented names must be cut at a rune boundary, never mid-character
	largo := "Carbón de espino añejado premium extra seleccionado"
	out := truncarNombre(largo, 40)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, 40, len([]rune(out)))
	assert.True(t, strings.HasSuffix(out, "…"))

	exacto := strings.Repeat("ñ", 40)
	assert.Equal(t, exacto, truncarNombre(exacto, 40))
}

func TestGenerateBoletaPDF_CreaDirectorio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "anidado", "pdfs")

	boleta := &model.Boleta{
		NumeroBoleta:     1,
		FechaBoleta:      time.Now(),
		FechaVencimiento: time.Now(),
		TotalBoleta:      decimal.RequireFromString("100"),
	}

	path, err := GenerateBoletaPDF(boleta, dir, "Cerro Negro")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
