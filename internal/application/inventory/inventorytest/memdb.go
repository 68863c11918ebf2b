// Package inventorytest provee un almacenamiento en memoria con semántica transaccional
// (copia de trabajo + commit al final) para probar los casos de uso sin PostgreSQL.
package inventorytest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renanb12/Projeto-Integrador/internal/application/inventory"
	"github.com/renanb12/Projeto-Integrador/internal/domain"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

// ErrInjected error devuelto por las operaciones configuradas con FailOn.
var ErrInjected = errors.New("fallo inyectado")

// State contenido confirmado de la base en memoria.
type State struct {
	Products []*entity.Product // orden de inserción
	Entries  []*entity.Entry
	Lines    []*entity.EntryLine
	History  []*entity.HistoryRecord
	Exits    []*entity.Exit
	lineSeq  int64
	histSeq  int64
}

func (s *State) clone() *State {
	out := &State{lineSeq: s.lineSeq, histSeq: s.histSeq}
	for _, p := range s.Products {
		c := *p
		out.Products = append(out.Products, &c)
	}
	for _, e := range s.Entries {
		c := *e
		out.Entries = append(out.Entries, &c)
	}
	for _, l := range s.Lines {
		c := *l
		out.Lines = append(out.Lines, &c)
	}
	for _, h := range s.History {
		c := *h
		out.History = append(out.History, &c)
	}
	for _, x := range s.Exits {
		c := *x
		out.Exits = append(out.Exits, &c)
	}
	return out
}

// DB base en memoria. Implementa inventory.TxRunner; Repos() da repositorios fuera de transacción.
type DB struct {
	mu        sync.Mutex
	state     *State
	calls     map[string]int
	failAt    map[string]int
	Commits   int
	Rollbacks int
}

var _ inventory.TxRunner = (*DB)(nil)

// New crea una base vacía.
func New() *DB {
	return &DB{state: &State{}, calls: map[string]int{}, failAt: map[string]int{}}
}

// FailOn hace que la n-ésima llamada (1..n) a op devuelva ErrInjected. op: "products.Create",
// "products.AddStock", "entries.Create", "entries.AddLine", "entries.UpdateStatus", "history.Append",
// "exits.Create", "products.DecreaseStock".
func (db *DB) FailOn(op string, n int) { db.failAt[op] = n }

// Snapshot copia del estado confirmado.
func (db *DB) Snapshot() *State {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.state.clone()
}

// Seed agrega productos ya confirmados.
func (db *DB) Seed(products ...*entity.Product) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, p := range products {
		c := *p
		db.state.Products = append(db.state.Products, &c)
	}
}

// Run ejecuta fn sobre una copia del estado y la confirma solo si fn no falla.
func (db *DB) Run(_ context.Context, fn func(inventory.TxRepos) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	work := db.state.clone()
	if err := fn(db.repos(work)); err != nil {
		db.Rollbacks++
		return err
	}
	db.state = work
	db.Commits++
	return nil
}

// Repos repositorios sobre el estado confirmado vigente (lecturas fuera de transacción).
func (db *DB) Repos() inventory.TxRepos {
	return db.repos(nil)
}

func (db *DB) repos(s *State) inventory.TxRepos {
	return inventory.TxRepos{
		Products: &products{db: db, s: s},
		Entries:  &entries{db: db, s: s},
		Exits:    &exits{db: db, s: s},
		History:  &history{db: db, s: s},
	}
}

// view estado de trabajo de la transacción o, si s es nil, el confirmado.
func (db *DB) view(s *State) *State {
	if s != nil {
		return s
	}
	return db.state
}

func (db *DB) hit(op string) error {
	db.calls[op]++
	if n, ok := db.failAt[op]; ok && db.calls[op] == n {
		return fmt.Errorf("%s: %w", op, ErrInjected)
	}
	return nil
}

// ── products ─────────────────────────────────────────────────────────────────

type products struct {
	db *DB
	s  *State
}

func (r *products) st() *State { return r.db.view(r.s) }

var _ repository.ProductRepository = (*products)(nil)

func (r *products) find(id string) *entity.Product {
	for _, p := range r.st().Products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *products) Create(_ context.Context, p *entity.Product) error {
	if err := r.db.hit("products.Create"); err != nil {
		return err
	}
	if r.find(p.ID) != nil {
		return domain.ErrConflict
	}
	c := *p
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.st().Products = append(r.st().Products, &c)
	return nil
}

func (r *products) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p := r.find(id); p != nil {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r *products) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *products) FindByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	for _, p := range r.st().Products {
		if p.Barcode == barcode {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *products) Update(_ context.Context, p *entity.Product) error {
	if err := r.db.hit("products.Update"); err != nil {
		return err
	}
	cur := r.find(p.ID)
	if cur == nil {
		return domain.ErrNotFound
	}
	createdAt := cur.CreatedAt
	*cur = *p
	cur.CreatedAt = createdAt
	return nil
}

func (r *products) AddStock(_ context.Context, id string, qty, purchase, selling decimal.Decimal) error {
	if err := r.db.hit("products.AddStock"); err != nil {
		return err
	}
	p := r.find(id)
	if p == nil {
		return domain.ErrNotFound
	}
	p.Stock = p.Stock.Add(qty)
	p.PurchasePrice = purchase
	p.SellingPrice = selling
	return nil
}

func (r *products) DecreaseStock(_ context.Context, id string, qty decimal.Decimal) error {
	if err := r.db.hit("products.DecreaseStock"); err != nil {
		return err
	}
	p := r.find(id)
	if p == nil {
		return domain.ErrNotFound
	}
	if p.Stock.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	p.Stock = p.Stock.Sub(qty)
	return nil
}

func (r *products) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for i := len(r.st().Products) - 1; i >= 0; i-- {
		p := r.st().Products[i]
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Barcode), strings.ToLower(f.Search)) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return page(out, f.Limit, f.Offset), nil
}

func (r *products) ListLowStock(_ context.Context, threshold decimal.Decimal, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.st().Products {
		if p.Stock.LessThan(threshold) {
			c := *p
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock.LessThan(out[j].Stock) })
	return page(out, limit, 0), nil
}

func (r *products) Delete(_ context.Context, id string) error {
	if err := r.db.hit("products.Delete"); err != nil {
		return err
	}
	for i, p := range r.st().Products {
		if p.ID == id {
			r.st().Products = append(r.st().Products[:i], r.st().Products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── entries ──────────────────────────────────────────────────────────────────

type entries struct {
	db *DB
	s  *State
}

func (r *entries) st() *State { return r.db.view(r.s) }

var _ repository.EntryRepository = (*entries)(nil)

func (r *entries) Create(_ context.Context, e *entity.Entry) error {
	if err := r.db.hit("entries.Create"); err != nil {
		return err
	}
	c := *e
	r.st().Entries = append(r.st().Entries, &c)
	return nil
}

func (r *entries) AddLine(_ context.Context, l *entity.EntryLine) error {
	if err := r.db.hit("entries.AddLine"); err != nil {
		return err
	}
	r.st().lineSeq++
	l.ID = r.st().lineSeq
	c := *l
	r.st().Lines = append(r.st().Lines, &c)
	return nil
}

func (r *entries) UpdateStatus(_ context.Context, id string, status entity.EntryStatus) error {
	if err := r.db.hit("entries.UpdateStatus"); err != nil {
		return err
	}
	for _, e := range r.st().Entries {
		if e.ID == id {
			e.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *entries) summary(e *entity.Entry) *entity.EntrySummary {
	out := &entity.EntrySummary{Entry: *e, TotalItems: decimal.Zero, TotalValue: decimal.Zero}
	for _, l := range r.st().Lines {
		if l.EntryID == e.ID {
			out.TotalProducts++
			out.TotalItems = out.TotalItems.Add(l.Quantity)
			out.TotalValue = out.TotalValue.Add(l.Quantity.Mul(l.UnitPrice))
		}
	}
	return out
}

func (r *entries) GetByID(_ context.Context, id string) (*entity.EntrySummary, error) {
	for _, e := range r.st().Entries {
		if e.ID == id {
			return r.summary(e), nil
		}
	}
	return nil, nil
}

func (r *entries) List(_ context.Context, limit, offset int) ([]*entity.EntrySummary, error) {
	var out []*entity.EntrySummary
	for i := len(r.st().Entries) - 1; i >= 0; i-- {
		out = append(out, r.summary(r.st().Entries[i]))
	}
	return page(out, limit, offset), nil
}

func (r *entries) ListLines(_ context.Context, entryID string) ([]*entity.EntryLine, error) {
	var out []*entity.EntryLine
	for _, l := range r.st().Lines {
		if l.EntryID == entryID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── history ──────────────────────────────────────────────────────────────────

type history struct {
	db *DB
	s  *State
}

func (r *history) st() *State { return r.db.view(r.s) }

var _ repository.HistoryRepository = (*history)(nil)

func (r *history) Append(_ context.Context, h *entity.HistoryRecord) error {
	if err := r.db.hit("history.Append"); err != nil {
		return err
	}
	r.st().histSeq++
	c := *h
	c.ID = r.st().histSeq
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.st().History = append(r.st().History, &c)
	return nil
}

func (r *history) List(_ context.Context, f repository.HistoryFilter) ([]*entity.HistoryRecord, error) {
	var out []*entity.HistoryRecord
	for i := len(r.st().History) - 1; i >= 0; i-- {
		h := r.st().History[i]
		if f.Type != "" && h.Type != f.Type {
			continue
		}
		c := *h
		out = append(out, &c)
	}
	return page(out, f.Limit, f.Offset), nil
}

func (r *history) Recent(ctx context.Context, limit int) ([]*entity.HistoryRecord, error) {
	return r.List(ctx, repository.HistoryFilter{Limit: limit})
}

// ── exits ────────────────────────────────────────────────────────────────────

type exits struct {
	db *DB
	s  *State
}

func (r *exits) st() *State { return r.db.view(r.s) }

var _ repository.ExitRepository = (*exits)(nil)

func (r *exits) Create(_ context.Context, x *entity.Exit) error {
	if err := r.db.hit("exits.Create"); err != nil {
		return err
	}
	c := *x
	r.st().Exits = append(r.st().Exits, &c)
	return nil
}

func (r *exits) List(_ context.Context, limit, offset int) ([]*entity.Exit, error) {
	var out []*entity.Exit
	for i := len(r.st().Exits) - 1; i >= 0; i-- {
		c := *r.st().Exits[i]
		out = append(out, &c)
	}
	return page(out, limit, offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
