package service

import (
	"context"
	"testing"

	"gestorcn/internal/dto"
	"gestorcn/internal/model"
	"gestorcn/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEliminarProducto_HardDeleteSinReferencias(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewProductoService(repo, newStubBoletaRepo(), nil)
	ctx := context.Background()

	created, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Descripcion: "Carbon 15kg",
		PrecioSala:  dec("12000"),
	})
	require.NoError(t, err)

	resp, err := svc.Eliminar(ctx, created.CodigoProducto)
	require.NoError(t, err)

	assert.Equal(t, dto.TipoHardDelete, resp.Tipo)
	_, err = svc.ObtenerPorID(ctx, created.CodigoProducto)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEliminarProducto_SoftDeleteConDetalles(t *testing.T) {
	repo := newStubProductoRepo()
	boletaRepo := newStubBoletaRepo()
	svc := NewProductoService(repo, boletaRepo, nil)
	ctx := context.Background()

	created, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Descripcion: "Leña seca",
		PrecioSala:  dec("8000"),
	})
	require.NoError(t, err)

	// the producto appears on a boleta line — deletion degrades to deactivation
	require.NoError(t, boletaRepo.InsertDetalleTx(nil, &model.DetalleBoleta{
		NumeroBoleta:   1,
		CodigoProducto: created.CodigoProducto,
		Cantidad:       dec("2"),
		PrecioUnitario: dec("8000"),
		Subtotal:       dec("16000"),
	}))

	resp, err := svc.Eliminar(ctx, created.CodigoProducto)
	require.NoError(t, err)

	assert.Equal(t, dto.TipoSoftDelete, resp.Tipo)
	stored, err := svc.ObtenerPorID(ctx, created.CodigoProducto)
	require.NoError(t, err)
	assert.False(t, stored.ProductoActivo)
}

func TestArticulos_SoloActivos(t *testing.T) {
	repo := newStubProductoRepo()
	boletaRepo := newStubBoletaRepo()
	svc := NewProductoService(repo, boletaRepo, nil)
	ctx := context.Background()

	activo, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Descripcion: "Carbon 15kg",
		PrecioSala:  dec("12000"),
		PrecioDto:   dec("10500"),
	})
	require.NoError(t, err)

	inactivo, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Descripcion: "Descontinuado",
		PrecioSala:  dec("100"),
	})
	require.NoError(t, err)
	require.NoError(t, boletaRepo.InsertDetalleTx(nil, &model.DetalleBoleta{
		NumeroBoleta: 1, CodigoProducto: inactivo.CodigoProducto,
		Cantidad: dec("1"), PrecioUnitario: dec("100"), Subtotal: dec("100"),
	}))
	_, err = svc.Eliminar(ctx, inactivo.CodigoProducto) // soft
	require.NoError(t, err)

	articulos, err := svc.Articulos(ctx)
	require.NoError(t, err)

	require.Len(t, articulos, 1)
	assert.Equal(t, activo.CodigoProducto, articulos[0].CodigoProducto)
	assert.Equal(t, "Carbon 15kg", articulos[0].Descripcion)
	assert.True(t, articulos[0].PrecioSala.Equal(dec("12000")))
	assert.True(t, articulos[0].PrecioDto.Equal(dec("10500")))
}

func TestActualizarProducto(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewProductoService(repo, newStubBoletaRepo(), nil)
	ctx := context.Background()

	created, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Descripcion: "Carbon 10kg",
		PrecioSala:  dec("9000"),
	})
	require.NoError(t, err)

	resp, err := svc.Actualizar(ctx, created.CodigoProducto, dto.ActualizarProductoRequest{
		Descripcion: "Carbon 10kg premium",
		PrecioSala:  dec("9500"),
		PrecioDto:   dec("8900"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Carbon 10kg premium", resp.Descripcion)
	assert.True(t, resp.PrecioSala.Equal(dec("9500")))
}
