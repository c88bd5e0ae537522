package service

import (
	"context"
	"fmt"

	"gestorcn/internal/dto"
	"gestorcn/internal/model"
	"gestorcn/internal/repository"

	"gorm.io/gorm"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id int) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id int, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id int) (*dto.EliminarResponse, error)
}

type clienteService struct {
	repo       repository.ClienteRepository
	boletaRepo repository.BoletaRepository
}

func NewClienteService(repo repository.ClienteRepository, boletaRepo repository.BoletaRepository) ClienteService {
	return &clienteService{repo: repo, boletaRepo: boletaRepo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	cliente := &model.Cliente{
		Rut:           req.Rut,
		RazonSocial:   req.RazonSocial,
		Telefono:      req.Telefono,
		Direccion:     req.Direccion,
		Comuna:        req.Comuna,
		Giro:          req.Giro,
		ClienteActivo: true,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id int) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente %d: %w", id, err)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		resp = append(resp, *clienteToResponse(&clientes[i]))
	}
	return resp, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id int, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("actualizar cliente %d: %w", id, err)
	}
	c.Rut = req.Rut
	c.RazonSocial = req.RazonSocial
	c.Telefono = req.Telefono
	c.Direccion = req.Direccion
	c.Comuna = req.Comuna
	c.Giro = req.Giro
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("actualizar cliente %d: %w", id, err)
	}
	return clienteToResponse(c), nil
}

// Eliminar applies the soft/hard delete policy in one transaction:
// the cliente row is locked, the boleta references counted, and only then is
// the branch chosen. Zero references = hard delete; otherwise deactivate,
// leaving history intact. The row lock closes the window where a concurrent
// boleta creation could reference the cliente between check and write.
func (s *clienteService) Eliminar(ctx context.Context, id int) (*dto.EliminarResponse, error) {
	var tipo string
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDForUpdateTx(tx, id); err != nil {
			return err
		}
		refs, err := s.boletaRepo.CountByClienteTx(tx, id)
		if err != nil {
			return err
		}
		if refs == 0 {
			tipo = dto.TipoHardDelete
			return s.repo.HardDeleteTx(tx, id)
		}
		tipo = dto.TipoSoftDelete
		return s.repo.DeactivateTx(tx, id)
	})
	if txErr != nil {
		return nil, fmt.Errorf("eliminar cliente %d: %w", id, txErr)
	}
	return &dto.EliminarResponse{Tipo: tipo}, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		CodigoCliente: c.CodigoCliente,
		Rut:           c.Rut,
		RazonSocial:   c.RazonSocial,
		Telefono:      c.Telefono,
		Direccion:     c.Direccion,
		Comuna:        c.Comuna,
		Giro:          c.Giro,
		ClienteActivo: c.ClienteActivo,
	}
}
