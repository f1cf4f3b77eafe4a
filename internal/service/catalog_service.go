package service

import (
	"context"
	"fmt"
	"strings"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

const searchLimit = 20

// CatalogService exposes the shared exercise and food catalogs.
type CatalogService interface {
	ListEjerciciosBase(ctx context.Context) ([]domain.EjercicioBase, error)
	SearchEjerciciosBase(ctx context.Context, query string) ([]domain.EjercicioBase, error)
	GetOrCreateEjercicioBase(ctx context.Context, nombre, categoria string) (*domain.EjercicioBase, error)

	ListAlimentos(ctx context.Context) ([]domain.Alimento, error)
	SearchAlimentos(ctx context.Context, query string) ([]domain.Alimento, error)
	GetOrCreateAlimento(ctx context.Context, alimento *domain.Alimento) (*domain.Alimento, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) ListEjerciciosBase(ctx context.Context) ([]domain.EjercicioBase, error) {
	return s.catalogRepo.ListEjerciciosBase(ctx)
}

func (s *catalogService) SearchEjerciciosBase(ctx context.Context, query string) ([]domain.EjercicioBase, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.EjercicioBase{}, nil
	}
	return s.catalogRepo.SearchEjerciciosBase(ctx, query, searchLimit)
}

// GetOrCreateEjercicioBase is idempotent by name, matched case-insensitively.
func (s *catalogService) GetOrCreateEjercicioBase(ctx context.Context, nombre, categoria string) (*domain.EjercicioBase, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: nombre cannot be empty", ErrValidation)
	}
	return s.catalogRepo.GetOrCreateEjercicioBase(ctx, &domain.EjercicioBase{
		Nombre:    nombre,
		Categoria: categoria,
	})
}

func (s *catalogService) ListAlimentos(ctx context.Context) ([]domain.Alimento, error) {
	return s.catalogRepo.ListAlimentos(ctx)
}

func (s *catalogService) SearchAlimentos(ctx context.Context, query string) ([]domain.Alimento, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Alimento{}, nil
	}
	return s.catalogRepo.SearchAlimentos(ctx, query, searchLimit)
}

// GetOrCreateAlimento is idempotent by name, matched case-insensitively.
// Macros are only stored on first creation.
func (s *catalogService) GetOrCreateAlimento(ctx context.Context, alimento *domain.Alimento) (*domain.Alimento, error) {
	alimento.Nombre = strings.TrimSpace(alimento.Nombre)
	if alimento.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre cannot be empty", ErrValidation)
	}
	return s.catalogRepo.GetOrCreateAlimento(ctx, alimento)
}
