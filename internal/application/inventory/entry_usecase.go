package inventory

import (
	"context"
	"fmt"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
	"github.com/renanb12/Projeto-Integrador/internal/domain"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

// EntryQueryUseCase lectura de entradas importadas y su comprobante PDF.
type EntryQueryUseCase struct {
	entryRepo repository.EntryRepository
	generator EntryReceiptGenerator
}

// NewEntryQueryUseCase construye el caso de uso.
func NewEntryQueryUseCase(entryRepo repository.EntryRepository, generator EntryReceiptGenerator) *EntryQueryUseCase {
	return &EntryQueryUseCase{entryRepo: entryRepo, generator: generator}
}

// List entradas con totales, más recientes primero.
func (uc *EntryQueryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.EntryListResponse, error) {
	page.DefaultPage()
	list, err := uc.entryRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar entradas: %w", err)
	}
	items := make([]dto.EntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toEntryResponse(e))
	}
	return &dto.EntryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Get una entrada. domain.ErrNotFound si no existe.
func (uc *EntryQueryUseCase) Get(ctx context.Context, id string) (*dto.EntryResponse, error) {
	e, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toEntryResponse(e)
	return &out, nil
}

// Lines líneas de una entrada. domain.ErrNotFound si la entrada no existe.
func (uc *EntryQueryUseCase) Lines(ctx context.Context, id string) ([]dto.EntryLineResponse, error) {
	if _, err := uc.load(ctx, id); err != nil {
		return nil, err
	}
	lines, err := uc.entryRepo.ListLines(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listar líneas: %w", err)
	}
	out := make([]dto.EntryLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.EntryLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Code:      l.Code,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.LineTotal,
		})
	}
	return out, nil
}

// DownloadPDF genera el comprobante de la entrada.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la entrada no existe.
func (uc *EntryQueryUseCase) DownloadPDF(ctx context.Context, id string) ([]byte, string, error) {
	e, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	lines, err := uc.entryRepo.ListLines(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	pdfBytes, err := uc.generator.GenerateEntryPDF(ctx, e, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	name := e.NoteNumber
	if name == "" {
		name = e.ID
	}
	return pdfBytes, fmt.Sprintf("entrada_%s.pdf", name), nil
}

func (uc *EntryQueryUseCase) load(ctx context.Context, id string) (*entity.EntrySummary, error) {
	e, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener entrada: %w", err)
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func toEntryResponse(e *entity.EntrySummary) dto.EntryResponse {
	return dto.EntryResponse{
		ID:            e.ID,
		EntryCode:     e.EntryCode,
		Status:        string(e.Status),
		Origin:        string(e.Origin),
		Supplier:      dto.PartyResponse{TaxID: e.Supplier.TaxID, Name: e.Supplier.Name},
		Recipient:     dto.PartyResponse{TaxID: e.Recipient.TaxID, Name: e.Recipient.Name},
		NoteNumber:    e.NoteNumber,
		Series:        e.Series,
		EntryType:     e.EntryType,
		AccessKey:     e.AccessKey,
		EmissionDate:  e.EmissionDate,
		CreatedAt:     e.CreatedAt,
		TotalProducts: e.TotalProducts,
		TotalItems:    e.TotalItems,
		TotalValue:    e.TotalValue,
	}
}
