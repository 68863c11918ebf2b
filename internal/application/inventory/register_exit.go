package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
	"github.com/renanb12/Projeto-Integrador/internal/domain"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

// ExitUseCase registra salidas de stock de forma transaccional con bloqueo de fila (SELECT FOR UPDATE).
type ExitUseCase struct {
	txRunner TxRunner
	exitRepo repository.ExitRepository
	now      func() time.Time
	log      zerolog.Logger
}

// NewExitUseCase construye el caso de uso.
func NewExitUseCase(txRunner TxRunner, exitRepo repository.ExitRepository, log zerolog.Logger) *ExitUseCase {
	return &ExitUseCase{txRunner: txRunner, exitRepo: exitRepo, now: time.Now, log: log}
}

// RegisterExit bloquea el producto, verifica StockActual >= Cantidad, registra la salida al precio
// de venta actual, resta el stock y agrega el historial. Commit o Rollback en bloque.
func (uc *ExitUseCase) RegisterExit(ctx context.Context, in dto.RegisterExitRequest) (*dto.ExitResponse, error) {
	if in.ProductID == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	exit := &entity.Exit{
		ID:        uuid.NewString(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		CreatedAt: uc.now(),
	}

	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Stock.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}

		exit.UnitPrice = product.SellingPrice
		exit.TotalPrice = in.Quantity.Mul(product.SellingPrice)
		exit.ProductName = product.Name
		exit.ProductUnit = product.Unit

		if err := repos.Exits.Create(ctx, exit); err != nil {
			return err
		}
		if err := repos.Products.DecreaseStock(ctx, product.ID, in.Quantity); err != nil {
			return err
		}
		qty := in.Quantity
		price := product.SellingPrice
		return repos.History.Append(ctx, &entity.HistoryRecord{
			Type:        entity.HistoryTypeExit,
			Status:      entity.HistoryStatusAdded,
			SubjectID:   exit.ID,
			Category:    product.Category,
			ProductName: optString(product.Name),
			Quantity:    &qty,
			UnitPrice:   &price,
			CreatedAt:   exit.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("exit_id", exit.ID).Str("product_id", exit.ProductID).
		Str("quantity", exit.Quantity.String()).Msg("salida registrada")
	return toExitResponse(exit), nil
}

// List lista salidas, más recientes primero.
func (uc *ExitUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ExitListResponse, error) {
	page.DefaultPage()
	list, err := uc.exitRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar salidas: %w", err)
	}
	items := make([]dto.ExitResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExitResponse(e))
	}
	return &dto.ExitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toExitResponse(e *entity.Exit) *dto.ExitResponse {
	return &dto.ExitResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		ProductUnit: string(e.ProductUnit),
		Quantity:    e.Quantity,
		Reason:      e.Reason,
		UnitPrice:   e.UnitPrice,
		TotalPrice:  e.TotalPrice,
		CreatedAt:   e.CreatedAt,
	}
}
