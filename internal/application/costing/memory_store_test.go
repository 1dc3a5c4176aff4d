package costing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/supplements/backend/internal/domain/inventory"
	"github.com/supplements/backend/internal/domain/settings"
	"github.com/supplements/backend/internal/domain/shared"
	"github.com/supplements/backend/internal/domain/trade"
	"github.com/supplements/backend/tests/testutil"
	"go.uber.org/zap"
)

// memoryStore is a transactional in-memory backend. Execute runs one
// transaction at a time and rolls every change back when fn fails.
type memoryStore struct {
	mu        sync.Mutex
	products  map[uuid.UUID]inventory.Product
	layers    map[uuid.UUID]inventory.CostLayer
	ledger    []inventory.InventoryTransaction
	purchases map[uuid.UUID]trade.Purchase
	sales     map[uuid.UUID]trade.Sale
	settings  settings.SystemSettings

	ledgerErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		products:  make(map[uuid.UUID]inventory.Product),
		layers:    make(map[uuid.UUID]inventory.CostLayer),
		purchases: make(map[uuid.UUID]trade.Purchase),
		sales:     make(map[uuid.UUID]trade.Sale),
		settings:  *settings.NewSystemSettings(),
	}
}

func (m *memoryStore) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.copyState()
	if err := fn(m); err != nil {
		m.products, m.layers, m.ledger = snapshot.products, snapshot.layers, snapshot.ledger
		m.purchases, m.sales, m.settings = snapshot.purchases, snapshot.sales, snapshot.settings
		return err
	}
	return nil
}

func (m *memoryStore) copyState() *memoryStore {
	cp := &memoryStore{
		products:  make(map[uuid.UUID]inventory.Product, len(m.products)),
		layers:    make(map[uuid.UUID]inventory.CostLayer, len(m.layers)),
		ledger:    append([]inventory.InventoryTransaction(nil), m.ledger...),
		purchases: make(map[uuid.UUID]trade.Purchase, len(m.purchases)),
		sales:     make(map[uuid.UUID]trade.Sale, len(m.sales)),
		settings:  m.settings,
	}
	for k, v := range m.products {
		cp.products[k] = v
	}
	for k, v := range m.layers {
		cp.layers[k] = v
	}
	for k, v := range m.purchases {
		cp.purchases[k] = clonePurchase(v)
	}
	for k, v := range m.sales {
		cp.sales[k] = cloneSale(v)
	}
	return cp
}

func clonePurchase(p trade.Purchase) trade.Purchase {
	p.Items = append([]trade.PurchaseItem(nil), p.Items...)
	return p
}

func cloneSale(s trade.Sale) trade.Sale {
	s.Items = append([]trade.SaleItem(nil), s.Items...)
	return s
}

func (m *memoryStore) ProductRepo() inventory.ProductRepository             { return memoryProducts{m} }
func (m *memoryStore) CostLayerRepo() inventory.CostLayerRepository         { return memoryLayers{m} }
func (m *memoryStore) LedgerRepo() inventory.InventoryTransactionRepository { return memoryLedger{m} }
func (m *memoryStore) PurchaseRepo() trade.PurchaseRepository               { return memoryPurchases{m} }
func (m *memoryStore) SaleRepo() trade.SaleRepository                       { return memorySales{m} }
func (m *memoryStore) SettingsRepo() settings.Repository                    { return memorySettings{m} }

type memoryProducts struct{ m *memoryStore }

func (r memoryProducts) FindByID(_ context.Context, id uuid.UUID) (*inventory.Product, error) {
	p, ok := r.m.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r memoryProducts) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	return r.FindByID(ctx, id)
}

func (r memoryProducts) FindByName(_ context.Context, name string) (*inventory.Product, error) {
	for _, p := range r.m.products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r memoryProducts) FindAll(_ context.Context, _ inventory.ProductFilter) ([]inventory.Product, int64, error) {
	out := make([]inventory.Product, 0, len(r.m.products))
	for _, p := range r.m.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r memoryProducts) FindLowStock(_ context.Context) ([]inventory.Product, error) {
	var out []inventory.Product
	for _, p := range r.m.products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memoryProducts) Save(_ context.Context, product *inventory.Product) error {
	cp := *product
	cp.ClearDomainEvents()
	r.m.products[product.ID] = cp
	return nil
}

type memoryLayers struct{ m *memoryStore }

func (r memoryLayers) Append(_ context.Context, layer *inventory.CostLayer) error {
	var last int64
	for _, l := range r.m.layers {
		if l.ProductID == layer.ProductID && l.Seq > last {
			last = l.Seq
		}
	}
	layer.Seq = last + 1
	r.m.layers[layer.ID] = *layer
	return nil
}

func (r memoryLayers) FindByID(_ context.Context, id uuid.UUID) (*inventory.CostLayer, error) {
	l, ok := r.m.layers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &l, nil
}

func (r memoryLayers) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*inventory.CostLayer, error) {
	out := make([]*inventory.CostLayer, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if l, ok := r.m.layers[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, &l)
		}
	}
	return out, nil
}

func (r memoryLayers) FindAvailable(ctx context.Context, productID uuid.UUID) ([]*inventory.CostLayer, error) {
	all, _ := r.FindByProduct(ctx, productID)
	out := make([]*inventory.CostLayer, 0, len(all))
	for _, l := range all {
		if l.QuantityRemaining.IsPositive() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r memoryLayers) FindByProduct(_ context.Context, productID uuid.UUID) ([]*inventory.CostLayer, error) {
	var out []*inventory.CostLayer
	for _, l := range r.m.layers {
		if l.ProductID == productID {
			cp := l
			out = append(out, &cp)
		}
	}
	inventory.SortFIFO(out)
	return out, nil
}

func (r memoryLayers) FindByPurchaseItems(_ context.Context, ids []uuid.UUID) ([]*inventory.CostLayer, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*inventory.CostLayer
	for _, l := range r.m.layers {
		if l.PurchaseItemID != nil && want[*l.PurchaseItemID] {
			cp := l
			out = append(out, &cp)
		}
	}
	inventory.SortFIFO(out)
	return out, nil
}

func (r memoryLayers) SaveRemaining(_ context.Context, layers ...*inventory.CostLayer) error {
	for _, l := range layers {
		stored, ok := r.m.layers[l.ID]
		if !ok {
			return shared.ErrNotFound
		}
		stored.QuantityRemaining = l.QuantityRemaining
		r.m.layers[l.ID] = stored
	}
	return nil
}

func (r memoryLayers) SumRemaining(_ context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range r.m.layers {
		if l.ProductID == productID {
			total = total.Add(l.QuantityRemaining)
		}
	}
	return total, nil
}

type memoryLedger struct{ m *memoryStore }

func (r memoryLedger) Record(_ context.Context, tx *inventory.InventoryTransaction) error {
	if r.m.ledgerErr != nil {
		return r.m.ledgerErr
	}
	r.m.ledger = append(r.m.ledger, *tx)
	return nil
}

func (r memoryLedger) FindAll(_ context.Context, filter inventory.LedgerFilter) ([]inventory.InventoryTransaction, int64, error) {
	var out []inventory.InventoryTransaction
	for _, tx := range r.m.ledger {
		if filter.ProductID != nil && tx.ProductID != *filter.ProductID {
			continue
		}
		if filter.Kind != "" && tx.Kind != filter.Kind {
			continue
		}
		out = append(out, tx)
	}
	return out, int64(len(out)), nil
}

type memoryPurchases struct{ m *memoryStore }

func (r memoryPurchases) FindByID(_ context.Context, id uuid.UUID) (*trade.Purchase, error) {
	p, ok := r.m.purchases[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := clonePurchase(p)
	return &cp, nil
}

func (r memoryPurchases) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	return r.FindByID(ctx, id)
}

func (r memoryPurchases) FindAll(_ context.Context, _ trade.PurchaseFilter) ([]trade.Purchase, int64, error) {
	out := make([]trade.Purchase, 0, len(r.m.purchases))
	for _, p := range r.m.purchases {
		out = append(out, clonePurchase(p))
	}
	return out, int64(len(out)), nil
}

func (r memoryPurchases) Save(_ context.Context, purchase *trade.Purchase) error {
	cp := clonePurchase(*purchase)
	cp.ClearDomainEvents()
	r.m.purchases[purchase.ID] = cp
	return nil
}

type memorySales struct{ m *memoryStore }

func (r memorySales) FindByID(_ context.Context, id uuid.UUID) (*trade.Sale, error) {
	s, ok := r.m.sales[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := cloneSale(s)
	return &cp, nil
}

func (r memorySales) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	return r.FindByID(ctx, id)
}

func (r memorySales) FindAll(_ context.Context, _ trade.SaleFilter) ([]trade.Sale, int64, error) {
	out := make([]trade.Sale, 0, len(r.m.sales))
	for _, s := range r.m.sales {
		out = append(out, cloneSale(s))
	}
	return out, int64(len(out)), nil
}

// Save stores the header and totals. Items are owned by SaveItem and DeleteItem.
func (r memorySales) Save(_ context.Context, sale *trade.Sale) error {
	cp := *sale
	cp.ClearDomainEvents()
	if stored, ok := r.m.sales[sale.ID]; ok {
		cp.Items = stored.Items
	} else {
		cp.Items = nil
	}
	r.m.sales[sale.ID] = cp
	return nil
}

func (r memorySales) SaveItem(_ context.Context, item *trade.SaleItem) error {
	s, ok := r.m.sales[item.SaleID]
	if !ok {
		return shared.ErrNotFound
	}
	s = cloneSale(s)
	s.Items = append(s.Items, *item)
	r.m.sales[item.SaleID] = s
	return nil
}

func (r memorySales) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	saleID, err := r.FindSaleIDByItem(ctx, itemID)
	if err != nil {
		return err
	}
	s := cloneSale(r.m.sales[saleID])
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			break
		}
	}
	r.m.sales[saleID] = s
	return nil
}

func (r memorySales) FindSaleIDByItem(_ context.Context, itemID uuid.UUID) (uuid.UUID, error) {
	for id, s := range r.m.sales {
		for i := range s.Items {
			if s.Items[i].ID == itemID {
				return id, nil
			}
		}
	}
	return uuid.Nil, shared.ErrNotFound
}

type memorySettings struct{ m *memoryStore }

func (r memorySettings) Get(_ context.Context) (*settings.SystemSettings, error) {
	s := r.m.settings
	return &s, nil
}

func (r memorySettings) Save(_ context.Context, s *settings.SystemSettings) error {
	r.m.settings = *s
	return nil
}

func (r memorySettings) Seed(_ context.Context, _ *settings.SystemSettings) (bool, error) {
	return false, nil
}

// test fixture helpers

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func timeOf(t *testing.T, day string) time.Time {
	t.Helper()
	at, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)
	return at
}

type fixture struct {
	store       *memoryStore
	locker      *ProductLocker
	receiving   *ReceivingService
	sales       *SaleCostingService
	adjustments *AdjustmentService
	publisher   *testutil.RecordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemoryStore()
	locker := NewProductLocker()
	publisher := &testutil.RecordingPublisher{}
	f := &fixture{
		store:       store,
		locker:      locker,
		receiving:   NewReceivingService(store, locker, Config{}, zap.NewNop()),
		sales:       NewSaleCostingService(store, locker, Config{}, zap.NewNop()),
		adjustments: NewAdjustmentService(store, locker, Config{}, zap.NewNop()),
		publisher:   publisher,
	}
	f.receiving.SetEventPublisher(publisher)
	f.sales.SetEventPublisher(publisher)
	f.adjustments.SetEventPublisher(publisher)
	return f
}

func (f *fixture) product(t *testing.T, name string) uuid.UUID {
	t.Helper()
	p, err := inventory.NewProduct(name, "Acme", "protein")
	require.NoError(t, err)
	require.NoError(t, f.store.ProductRepo().Save(context.Background(), p))
	return p.ID
}

type purchaseLine struct {
	productID uuid.UUID
	qty       string
	unitUSD   string
	discount  string
}

// purchase stores a pending purchase with real costs set
func (f *fixture) purchase(t *testing.T, shipping, taxes string, lines ...purchaseLine) *trade.Purchase {
	t.Helper()
	p, err := trade.NewPurchase("Supplier", timeOf(t, "2024-01-10"))
	require.NoError(t, err)
	for _, l := range lines {
		discount := "0"
		if l.discount != "" {
			discount = l.discount
		}
		_, err := p.AddItem(l.productID, dec(l.qty), dec(l.unitUSD), dec(discount))
		require.NoError(t, err)
	}
	if shipping != "" {
		require.NoError(t, p.SetRealCosts(dec(shipping), dec(taxes)))
	}
	require.NoError(t, f.store.PurchaseRepo().Save(context.Background(), p))
	return p
}

func (f *fixture) receive(t *testing.T, shipping, taxes string, lines ...purchaseLine) *trade.Purchase {
	t.Helper()
	p := f.purchase(t, shipping, taxes, lines...)
	_, err := f.receiving.ReceivePurchase(context.Background(), p.ID)
	require.NoError(t, err)
	return p
}

func (f *fixture) openSale(t *testing.T) uuid.UUID {
	t.Helper()
	s, err := trade.NewSale("Walk-in", timeOf(t, "2024-02-01"))
	require.NoError(t, err)
	require.NoError(t, f.store.SaleRepo().Save(context.Background(), s))
	return s.ID
}

func (f *fixture) loadProduct(t *testing.T, id uuid.UUID) *inventory.Product {
	t.Helper()
	p, err := f.store.ProductRepo().FindByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (f *fixture) loadSale(t *testing.T, id uuid.UUID) *trade.Sale {
	t.Helper()
	s, err := f.store.SaleRepo().FindByID(context.Background(), id)
	require.NoError(t, err)
	return s
}

// requireStockMatchesLayers checks current_stock == sum of remaining layer quantities
func (f *fixture) requireStockMatchesLayers(t *testing.T, productID uuid.UUID) {
	t.Helper()
	remaining, err := f.store.CostLayerRepo().SumRemaining(context.Background(), productID)
	require.NoError(t, err)
	p := f.loadProduct(t, productID)
	require.True(t, p.CurrentStock.Equal(remaining),
		"stock %s != layers %s", p.CurrentStock, remaining)
}

func (f *fixture) ledgerFor(productID uuid.UUID) []inventory.InventoryTransaction {
	entries, _, _ := f.store.LedgerRepo().FindAll(context.Background(), inventory.LedgerFilter{ProductID: &productID})
	return entries
}

var _ TransactionScope = (*memoryStore)(nil)
