package inventory

import (
	"context"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products repository.ProductRepository
	Entries  repository.EntryRepository
	Exits    repository.ExitRepository
	History  repository.HistoryRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. La conexión se libera siempre.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// EntryReceiptGenerator genera el comprobante PDF de una entrada.
type EntryReceiptGenerator interface {
	GenerateEntryPDF(ctx context.Context, entry *entity.EntrySummary, lines []*entity.EntryLine) ([]byte, error)
}
