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

func TestCrearCliente(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo, newStubBoletaRepo())

	resp, err := svc.Crear(context.Background(), dto.CrearClienteRequest{
		Rut:         "11111111-1",
		RazonSocial: "Comercial Andes Ltda",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.CodigoCliente)
	assert.True(t, resp.ClienteActivo, "nuevos clientes nacen activos")
}

func TestCrearCliente_RutDuplicado(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo, newStubBoletaRepo())
	ctx := context.Background()

	_, err := svc.Crear(ctx, dto.CrearClienteRequest{Rut: "11111111-1", RazonSocial: "Uno"})
	require.NoError(t, err)

	_, err = svc.Crear(ctx, dto.CrearClienteRequest{Rut: "11111111-1", RazonSocial: "Dos"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestEliminarCliente_HardDeleteSinReferencias(t *testing.T) {
	repo := newStubClienteRepo()
	boletaRepo := newStubBoletaRepo()
	svc := NewClienteService(repo, boletaRepo)
	ctx := context.Background()

	created, err := svc.Crear(ctx, dto.CrearClienteRequest{Rut: "22222222-2", RazonSocial: "Sin Boletas"})
	require.NoError(t, err)

	resp, err := svc.Eliminar(ctx, created.CodigoCliente)
	require.NoError(t, err)

	assert.Equal(t, dto.TipoHardDelete, resp.Tipo)
	_, err = svc.ObtenerPorID(ctx, created.CodigoCliente)
	assert.ErrorIs(t, err, repository.ErrNotFound, "hard delete removes the row")
}

func TestEliminarCliente_SoftDeleteConBoletas(t *testing.T) {
	repo := newStubClienteRepo()
	boletaRepo := newStubBoletaRepo()
	svc := NewClienteService(repo, boletaRepo)
	ctx := context.Background()

	created, err := svc.Crear(ctx, dto.CrearClienteRequest{Rut: "33333333-3", RazonSocial: "Con Boletas"})
	require.NoError(t, err)

	// a boleta references the cliente — deletion must degrade to deactivation
	require.NoError(t, boletaRepo.CreateTx(ctx, nil, &model.Boleta{
		CodigoCliente: created.CodigoCliente,
		CodigoUsuario: 1,
		TotalBoleta:   dec("1000"),
	}))

	resp, err := svc.Eliminar(ctx, created.CodigoCliente)
	require.NoError(t, err)

	assert.Equal(t, dto.TipoSoftDelete, resp.Tipo)
	stored, err := svc.ObtenerPorID(ctx, created.CodigoCliente)
	require.NoError(t, err, "soft delete keeps the row")
	assert.False(t, stored.ClienteActivo)
}

func TestEliminarCliente_NoExiste(t *testing.T) {
	svc := NewClienteService(newStubClienteRepo(), newStubBoletaRepo())

	_, err := svc.Eliminar(context.Background(), 404)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListarClientes_FiltroActivo(t *testing.T) {
	repo := newStubClienteRepo()
	boletaRepo := newStubBoletaRepo()
	svc := NewClienteService(repo, boletaRepo)
	ctx := context.Background()

	activo, err := svc.Crear(ctx, dto.CrearClienteRequest{Rut: "44444444-4", RazonSocial: "Activo"})
	require.NoError(t, err)
	inactivo, err := svc.Crear(ctx, dto.CrearClienteRequest{Rut: "55555555-5", RazonSocial: "Inactivo"})
	require.NoError(t, err)
	require.NoError(t, boletaRepo.CreateTx(ctx, nil, &model.Boleta{
		CodigoCliente: inactivo.CodigoCliente, CodigoUsuario: 1, TotalBoleta: dec("1"),
	}))
	_, err = svc.Eliminar(ctx, inactivo.CodigoCliente) // soft
	require.NoError(t, err)

	defecto, err := svc.Listar(ctx, dto.ClienteFilter{})
	require.NoError(t, err)
	require.Len(t, defecto, 1)
	assert.Equal(t, activo.CodigoCliente, defecto[0].CodigoCliente)

	inactivos, err := svc.Listar(ctx, dto.ClienteFilter{Activo: "false"})
	require.NoError(t, err)
	require.Len(t, inactivos, 1)
	assert.Equal(t, inactivo.CodigoCliente, inactivos[0].CodigoCliente)

	todos, err := svc.Listar(ctx, dto.ClienteFilter{Activo: "all"})
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestActualizarCliente(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo, newStubBoletaRepo())
	ctx := context.Background()

	created, err := svc.Crear(ctx, dto.CrearClienteRequest{Rut: "66666666-6", RazonSocial: "Antes"})
	require.NoError(t, err)

	telefono := "+56 9 1234 5678"
	resp, err := svc.Actualizar(ctx, created.CodigoCliente, dto.ActualizarClienteRequest{
		Rut:         "66666666-6",
		RazonSocial: "Despues",
		Telefono:    &telefono,
	})
	require.NoError(t, err)

	assert.Equal(t, "Despues", resp.RazonSocial)
	require.NotNil(t, resp.Telefono)
	assert.Equal(t, telefono, *resp.Telefono)
}
