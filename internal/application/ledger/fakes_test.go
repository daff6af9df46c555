package ledger_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para probar el motor sin PostgreSQL. memTxRunner serializa
// las transacciones con un mutex y restaura el estado completo si fn devuelve
// error, igual que un ROLLBACK real: o todas las escrituras quedan o ninguna.
// ──────────────────────────────────────────────────────────────────────────────

type snapKey struct {
	skuID      int64
	locationID int64
}

type memStore struct {
	opMu sync.Mutex // una operación a la vez
	txMu sync.Mutex // una transacción a la vez

	movements      []*entity.Movement
	nextMovementID int64
	snapshots      map[snapKey]*entity.Snapshot
	skus           map[int64]*entity.SKU
	locations      map[int64]*entity.Location

	// ensureTrace registra el orden de las llamadas a EnsureRow. Es traza de
	// observación, no estado: un rollback no la deshace.
	ensureTrace []snapKey
}

func newMemStore() *memStore {
	return &memStore{
		snapshots: make(map[snapKey]*entity.Snapshot),
		skus:      make(map[int64]*entity.SKU),
		locations: make(map[int64]*entity.Location),
	}
}

func (s *memStore) addSKU(sku *entity.SKU) {
	s.skus[sku.ID] = sku
}

func (s *memStore) addLocation(loc *entity.Location) {
	if loc.Code == "" {
		loc.Code = entity.BuildLocationCode(loc.Row, loc.Bay, loc.Level, loc.Side)
	}
	s.locations[loc.ID] = loc
}

// clone copia profunda para simular ROLLBACK.
func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.nextMovementID = s.nextMovementID
	for _, m := range s.movements {
		mc := *m
		c.movements = append(c.movements, &mc)
	}
	for k, v := range s.snapshots {
		vc := *v
		c.snapshots[k] = &vc
	}
	for k, v := range s.skus {
		vc := *v
		c.skus[k] = &vc
	}
	for k, v := range s.locations {
		vc := *v
		c.locations[k] = &vc
	}
	return c
}

func (s *memStore) restore(backup *memStore) {
	s.movements = backup.movements
	s.nextMovementID = backup.nextMovementID
	s.snapshots = backup.snapshots
	s.skus = backup.skus
	s.locations = backup.locations
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios fake
// ──────────────────────────────────────────────────────────────────────────────

type memMovementRepo struct {
	s *memStore
	// createErr permite inyectar un fallo en el append (pruebas de rollback)
	createErr func(m *entity.Movement) error
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	if r.createErr != nil {
		if err := r.createErr(m); err != nil {
			return err
		}
	}
	r.s.nextMovementID++
	m.ID = r.s.nextMovementID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	mc := *m
	r.s.movements = append(r.s.movements, &mc)
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id int64) (*entity.Movement, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			mc := *m
			return &mc, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) List(_ context.Context, filter repository.MovementFilter, ascending bool) ([]*entity.Movement, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if !matches(r.s, m, filter) {
			continue
		}
		mc := *m
		out = append(out, &mc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if !ascending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func matches(s *memStore, m *entity.Movement, f repository.MovementFilter) bool {
	if f.SKUID != nil && m.SKUID != *f.SKUID {
		return false
	}
	if f.LocationID != nil && m.LocationID != *f.LocationID {
		return false
	}
	if f.Row != nil || f.Bay != nil || f.Level != nil || f.Side != nil {
		loc := s.locations[m.LocationID]
		if loc == nil {
			return false
		}
		if f.Row != nil && loc.Row != *f.Row {
			return false
		}
		if f.Bay != nil && loc.Bay != *f.Bay {
			return false
		}
		if f.Level != nil && loc.Level != *f.Level {
			return false
		}
		if f.Side != nil && loc.Side != *f.Side {
			return false
		}
	}
	if f.From != nil && m.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && m.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

func (r *memMovementRepo) SumByKey(_ context.Context, skuID, locationID int64) (int64, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	var sum int64
	for _, m := range r.s.movements {
		if m.SKUID == skuID && m.LocationID == locationID {
			sum += m.QuantityChange
		}
	}
	return sum, nil
}

func (r *memMovementRepo) SumBySKU(_ context.Context, skuID int64) (int64, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	var sum int64
	for _, m := range r.s.movements {
		if m.SKUID == skuID {
			sum += m.QuantityChange
		}
	}
	return sum, nil
}

type memSnapshotRepo struct {
	s *memStore
}

func (r *memSnapshotRepo) Get(_ context.Context, skuID, locationID int64) (*entity.Snapshot, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	if snap, ok := r.s.snapshots[snapKey{skuID, locationID}]; ok {
		sc := *snap
		return &sc, nil
	}
	return &entity.Snapshot{SKUID: skuID, LocationID: locationID}, nil
}

func (r *memSnapshotRepo) EnsureRow(_ context.Context, skuID, locationID int64) error {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	k := snapKey{skuID, locationID}
	r.s.ensureTrace = append(r.s.ensureTrace, k)
	if _, ok := r.s.snapshots[k]; !ok {
		r.s.snapshots[k] = &entity.Snapshot{SKUID: skuID, LocationID: locationID, UpdatedAt: time.Now()}
	}
	return nil
}

func (r *memSnapshotRepo) GetForUpdate(ctx context.Context, skuID, locationID int64) (*entity.Snapshot, error) {
	return r.Get(ctx, skuID, locationID)
}

func (r *memSnapshotRepo) Update(_ context.Context, snap *entity.Snapshot) error {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	sc := *snap
	r.s.snapshots[snapKey{snap.SKUID, snap.LocationID}] = &sc
	return nil
}

func (r *memSnapshotRepo) GuardedDecrement(_ context.Context, skuID, locationID, qty int64) (int64, bool, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	snap, ok := r.s.snapshots[snapKey{skuID, locationID}]
	if !ok || snap.Quantity < qty {
		return 0, false, nil
	}
	snap.Quantity -= qty
	snap.UpdatedAt = time.Now()
	return snap.Quantity, true, nil
}

func (r *memSnapshotRepo) Increment(_ context.Context, skuID, locationID, qty int64) (int64, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	k := snapKey{skuID, locationID}
	snap, ok := r.s.snapshots[k]
	if !ok {
		snap = &entity.Snapshot{SKUID: skuID, LocationID: locationID}
		r.s.snapshots[k] = snap
	}
	snap.Quantity += qty
	snap.UpdatedAt = time.Now()
	return snap.Quantity, nil
}

func (r *memSnapshotRepo) ListBySKU(_ context.Context, skuID int64) ([]*entity.Snapshot, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	var out []*entity.Snapshot
	for _, snap := range r.s.snapshots {
		if snap.SKUID == skuID {
			sc := *snap
			out = append(out, &sc)
		}
	}
	return out, nil
}

func (r *memSnapshotRepo) ListByLocation(_ context.Context, locationID int64) ([]*entity.Snapshot, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	var out []*entity.Snapshot
	for _, snap := range r.s.snapshots {
		if snap.LocationID == locationID {
			sc := *snap
			out = append(out, &sc)
		}
	}
	return out, nil
}

func (r *memSnapshotRepo) SumBySKU(_ context.Context, skuID int64) (int64, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	var sum int64
	for _, snap := range r.s.snapshots {
		if snap.SKUID == skuID {
			sum += snap.Quantity
		}
	}
	return sum, nil
}

func (r *memSnapshotRepo) ForceQuantity(_ context.Context, skuID, locationID, qty int64) error {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	k := snapKey{skuID, locationID}
	snap, ok := r.s.snapshots[k]
	if !ok {
		snap = &entity.Snapshot{SKUID: skuID, LocationID: locationID}
		r.s.snapshots[k] = snap
	}
	snap.Quantity = qty
	snap.UpdatedAt = time.Now()
	return nil
}

type memSKURepo struct {
	s *memStore
}

func (r *memSKURepo) Create(_ context.Context, sku *entity.SKU) error {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	for _, existing := range r.s.skus {
		if existing.Code == sku.Code {
			return domain.ErrDuplicate
		}
	}
	sku.ID = int64(len(r.s.skus) + 1)
	sc := *sku
	r.s.skus[sku.ID] = &sc
	return nil
}

func (r *memSKURepo) GetByID(_ context.Context, id int64) (*entity.SKU, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	if sku, ok := r.s.skus[id]; ok {
		sc := *sku
		return &sc, nil
	}
	return nil, nil
}

func (r *memSKURepo) GetByCode(_ context.Context, code string) (*entity.SKU, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	for _, sku := range r.s.skus {
		if sku.Code == code {
			sc := *sku
			return &sc, nil
		}
	}
	return nil, nil
}

func (r *memSKURepo) List(_ context.Context, _, _ int) ([]*entity.SKU, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	var out []*entity.SKU
	for _, sku := range r.s.skus {
		sc := *sku
		out = append(out, &sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memSKURepo) UpdateCost(_ context.Context, id int64, cost decimal.Decimal) error {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	if sku, ok := r.s.skus[id]; ok {
		sku.AvgCost = cost
	}
	return nil
}

func (r *memSKURepo) AddToTotal(_ context.Context, id int64, delta int64) error {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	if sku, ok := r.s.skus[id]; ok {
		sku.TotalQuantity += delta
	}
	return nil
}

func (r *memSKURepo) SetTotal(_ context.Context, id int64, total int64) error {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	if sku, ok := r.s.skus[id]; ok {
		sku.TotalQuantity = total
	}
	return nil
}

type memLocationRepo struct {
	s *memStore
}

func (r *memLocationRepo) Create(_ context.Context, loc *entity.Location) error {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	loc.ID = int64(len(r.s.locations) + 1)
	loc.Code = entity.BuildLocationCode(loc.Row, loc.Bay, loc.Level, loc.Side)
	lc := *loc
	r.s.locations[loc.ID] = &lc
	return nil
}

func (r *memLocationRepo) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	if loc, ok := r.s.locations[id]; ok {
		lc := *loc
		return &lc, nil
	}
	return nil, nil
}

func (r *memLocationRepo) GetByCode(_ context.Context, code string) (*entity.Location, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	for _, loc := range r.s.locations {
		if loc.Code == code {
			lc := *loc
			return &lc, nil
		}
	}
	return nil, nil
}

func (r *memLocationRepo) List(_ context.Context, _, _ int) ([]*entity.Location, error) {
	r.s.opMu.Lock()
	defer r.s.opMu.Unlock()
	var out []*entity.Location
	for _, loc := range r.s.locations {
		lc := *loc
		out = append(out, &lc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// memTxRunner serializa transacciones completas y restaura el estado si fn
// devuelve error (rollback).
type memTxRunner struct {
	s       *memStore
	movRepo *memMovementRepo
}

func newMemTxRunner(s *memStore) *memTxRunner {
	return &memTxRunner{s: s, movRepo: &memMovementRepo{s: s}}
}

func (t *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	snapRepo repository.SnapshotRepository,
	skuRepo repository.SKURepository,
) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	t.s.opMu.Lock()
	backup := t.s.clone()
	t.s.opMu.Unlock()

	err := fn(t.movRepo, &memSnapshotRepo{s: t.s}, &memSKURepo{s: t.s})
	if err != nil {
		t.s.opMu.Lock()
		t.s.restore(backup)
		t.s.opMu.Unlock()
		return err
	}
	return nil
}
