package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
	"github.com/renanb12/Projeto-Integrador/internal/domain"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	domaininv "github.com/renanb12/Projeto-Integrador/internal/domain/inventory"
	"github.com/renanb12/Projeto-Integrador/internal/domain/nfe"
)

// historyCategoryImport categoría de los registros de historial generados por importación.
const historyCategoryImport = "Import"

// ImportInput contenido del XML y ruta donde quedó guardado (xml_path de la entrada).
type ImportInput struct {
	Content    []byte
	SourcePath string
}

// ImportInvoiceUseCase importa una NFe: crea la entrada, concilia cada línea con el catálogo,
// ajusta stock y precios y registra el historial, todo en una única transacción.
type ImportInvoiceUseCase struct {
	txRunner   TxRunner
	reconciler *domaininv.Reconciler
	newEntryID func() (string, error)
	now        func() time.Time
	log        zerolog.Logger
}

// NewImportInvoiceUseCase construye el caso de uso. Los ids de entrada son UUID v7 (ordenados por tiempo).
func NewImportInvoiceUseCase(txRunner TxRunner, reconciler *domaininv.Reconciler, log zerolog.Logger) *ImportInvoiceUseCase {
	return &ImportInvoiceUseCase{
		txRunner:   txRunner,
		reconciler: reconciler,
		newEntryID: func() (string, error) {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
		now: time.Now,
		log: log.With().Str("component", "nfe_import").Logger(),
	}
}

// ImportXML extrae la NFe y la importa. La extracción ocurre antes de abrir la transacción.
//
// Errores (todos envuelven domain.ErrImportFailed):
//   - nfe.ErrMalformedDocument / nfe.ErrFieldExtraction si el XML no es utilizable.
//   - domain.ErrPersistence si falla cualquier escritura; nada de la importación queda persistido.
func (uc *ImportInvoiceUseCase) ImportXML(ctx context.Context, in ImportInput) (*dto.ImportResult, error) {
	if len(in.Content) == 0 {
		return nil, domain.ErrNoFileProvided
	}
	doc, err := nfe.Extract(in.Content)
	if err != nil {
		uc.log.Warn().Err(err).Str("xml_path", in.SourcePath).Msg("NFe rechazada")
		return nil, fmt.Errorf("%w: %w", domain.ErrImportFailed, err)
	}
	return uc.ImportDocument(ctx, doc, in.SourcePath)
}

// ImportDocument importa un documento ya extraído. Un documento sin ítems genera una entrada sin líneas.
func (uc *ImportInvoiceUseCase) ImportDocument(ctx context.Context, doc *nfe.InvoiceDocument, sourcePath string) (*dto.ImportResult, error) {
	entryID, err := uc.newEntryID()
	if err != nil {
		return nil, fmt.Errorf("%w: generar id de entrada: %w", domain.ErrImportFailed, err)
	}

	entry := &entity.Entry{
		ID:         entryID,
		EntryCode:  doc.Invoice.Number,
		Status:     entity.EntryStatusProcessing,
		Origin:     entity.EntryOriginImport,
		XMLPath:    sourcePath,
		Supplier:   doc.Supplier,
		Recipient:  doc.Recipient,
		NoteNumber: doc.Invoice.Number,
		Series:     doc.Invoice.Series,
		EntryType:  entity.EntryTypePurchase,
		AccessKey:  doc.AccessKey,
		CreatedAt:  uc.now(),
	}
	if emitted, ok := doc.Invoice.EmittedAt(); ok {
		entry.EmissionDate = &emitted
	} else if doc.Invoice.IssuedAt != "" {
		uc.log.Warn().Str("access_key", doc.AccessKey).Str("dhEmi", doc.Invoice.IssuedAt).
			Msg("fecha de emisión no reconocida; se guarda NULL")
	}

	result := &dto.ImportResult{EntryID: entryID, AccessKey: doc.AccessKey, Lines: len(doc.Items)}

	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Entries.Create(ctx, entry); err != nil {
			return fmt.Errorf("crear entrada: %w", err)
		}
		for i, item := range doc.Items {
			created, err := uc.importLine(ctx, repos, entry, i+1, item)
			if err != nil {
				return err
			}
			if created {
				result.CreatedProducts++
			} else {
				result.UpdatedProducts++
			}
		}
		if err := repos.Entries.UpdateStatus(ctx, entryID, entity.EntryStatusCompleted); err != nil {
			return fmt.Errorf("completar entrada: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("entry_id", entryID).
			Str("access_key", doc.AccessKey).
			Str("xml_path", sourcePath).
			Msg("importación revertida")
		return nil, fmt.Errorf("%w: %w", domain.ErrImportFailed, asPersistence(err))
	}

	uc.log.Info().
		Str("entry_id", entryID).
		Str("access_key", doc.AccessKey).
		Str("supplier", doc.Supplier.Name).
		Int("lines", result.Lines).
		Int("created_products", result.CreatedProducts).
		Int("updated_products", result.UpdatedProducts).
		Msg("NFe importada")
	result.Message = "XML importado con éxito"
	return result, nil
}

// importLine concilia, ajusta el producto, registra la línea y su historial. Devuelve true si creó el producto.
func (uc *ImportInvoiceUseCase) importLine(ctx context.Context, repos TxRepos, entry *entity.Entry, pos int, item nfe.LineItem) (bool, error) {
	rec, err := uc.reconciler.Reconcile(ctx, repos.Products, item)
	if err != nil {
		return false, fmt.Errorf("línea %d: %w", pos, err)
	}
	prices := domaininv.DerivePrices(item.UnitPrice)

	if rec.IsNew {
		product := rec.Product
		domaininv.ApplyEntry(product, item.Quantity, prices)
		product.CreatedAt = entry.CreatedAt
		if err := repos.Products.Create(ctx, product); err != nil {
			return false, fmt.Errorf("línea %d: crear producto %q: %w", pos, item.Code, err)
		}
	} else {
		if err := repos.Products.AddStock(ctx, rec.ProductID, item.Quantity, prices.Purchase, prices.Selling); err != nil {
			return false, fmt.Errorf("línea %d: actualizar producto %s: %w", pos, rec.ProductID, err)
		}
	}

	line := &entity.EntryLine{
		EntryID:   entry.ID,
		ProductID: rec.ProductID,
		Code:      item.Code,
		Name:      item.Name,
		Quantity:  item.Quantity,
		UnitPrice: prices.Purchase,
		LineTotal: item.LineTotal,
	}
	if err := repos.Entries.AddLine(ctx, line); err != nil {
		return false, fmt.Errorf("línea %d: registrar línea: %w", pos, err)
	}

	qty := item.Quantity
	price := prices.Purchase
	if err := repos.History.Append(ctx, &entity.HistoryRecord{
		Type:         entity.HistoryTypeEntry,
		Status:       entity.HistoryStatusAdded,
		SubjectID:    entry.ID,
		Category:     historyCategoryImport,
		SupplierName: optString(entry.Supplier.Name),
		ProductName:  optString(item.Name),
		Quantity:     &qty,
		UnitPrice:    &price,
		CreatedAt:    entry.CreatedAt,
	}); err != nil {
		return false, fmt.Errorf("línea %d: registrar historial: %w", pos, err)
	}
	return rec.IsNew, nil
}

// optString nil para "", así el historial guarda NULL y no cadenas vacías.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// asPersistence asegura que el error quede clasificado como domain.ErrPersistence.
func asPersistence(err error) error {
	if errors.Is(err, domain.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
