package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gestorcn/internal/dto"
	"gestorcn/internal/model"
	"gestorcn/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	articulosCacheKey = "cache:articulos"
	articulosCacheTTL = 60 * time.Second
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id int) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id int, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id int) (*dto.EliminarResponse, error)
	// Articulos returns the active catalog reshaped for boleta line selection.
	Articulos(ctx context.Context) ([]dto.ArticuloResponse, error)
}

type productoService struct {
	repo       repository.ProductoRepository
	boletaRepo repository.BoletaRepository
	rdb        *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, boletaRepo repository.BoletaRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, boletaRepo: boletaRepo, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		Descripcion:    req.Descripcion,
		PrecioSala:     req.PrecioSala,
		PrecioDto:      req.PrecioDto,
		ProductoActivo: true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	s.invalidateArticulos(ctx)
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id int) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto %d: %w", id, err)
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		resp = append(resp, *productoToResponse(&productos[i]))
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id int, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("actualizar producto %d: %w", id, err)
	}
	p.Descripcion = req.Descripcion
	p.PrecioSala = req.PrecioSala
	p.PrecioDto = req.PrecioDto
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("actualizar producto %d: %w", id, err)
	}
	s.invalidateArticulos(ctx)
	return productoToResponse(p), nil
}

// Eliminar mirrors the cliente policy, keyed on detallesboleta references:
// a producto that appears on any boleta line is deactivated instead of removed.
func (s *productoService) Eliminar(ctx context.Context, id int) (*dto.EliminarResponse, error) {
	var tipo string
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDForUpdateTx(tx, id); err != nil {
			return err
		}
		refs, err := s.boletaRepo.CountDetallesByProductoTx(tx, id)
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
		return nil, fmt.Errorf("eliminar producto %d: %w", id, txErr)
	}
	s.invalidateArticulos(ctx)
	return &dto.EliminarResponse{Tipo: tipo}, nil
}

func (s *productoService) Articulos(ctx context.Context) ([]dto.ArticuloResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, articulosCacheKey).Bytes(); err == nil {
			var articulos []dto.ArticuloResponse
			if json.Unmarshal(cached, &articulos) == nil {
				return articulos, nil
			}
		}
	}

	productos, err := s.repo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	articulos := make([]dto.ArticuloResponse, 0, len(productos))
	for _, p := range productos {
		articulos = append(articulos, dto.ArticuloResponse{
			CodigoProducto: p.CodigoProducto,
			Descripcion:    p.Descripcion,
			PrecioSala:     p.PrecioSala,
			PrecioDto:      p.PrecioDto,
		})
	}

	if s.rdb != nil {
		if data, err := json.Marshal(articulos); err == nil {
			_ = s.rdb.Set(ctx, articulosCacheKey, data, articulosCacheTTL).Err()
		}
	}
	return articulos, nil
}

func (s *productoService) invalidateArticulos(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, articulosCacheKey).Err()
	}
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		CodigoProducto: p.CodigoProducto,
		Descripcion:    p.Descripcion,
		PrecioSala:     p.PrecioSala,
		PrecioDto:      p.PrecioDto,
		ProductoActivo: p.ProductoActivo,
	}
}
