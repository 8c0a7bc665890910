package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
	"github.com/kosman/kosman-api/pkg/clock"
)

// memStore is the in-memory backing for the fake repositories. Reads and
// writes go through copies, like rows in a real store, so use case mutations
// never leak in without an explicit Update. The fail* fields inject errors to
// exercise transaction rollback paths.
type memStore struct {
	mu           sync.Mutex
	rooms        map[string]entity.Room
	tenants      map[string]entity.Tenant
	rentals      map[string]entity.Rental
	bills        map[string]entity.Bill
	tickets      map[string]entity.Maintenance
	transactions []entity.Transaction

	failRoomStatusUpdate error
	failLedgerCreate     error

	// before* hooks run once just before the matching transaction callback,
	// standing in for a concurrent request that committed first.
	beforeSettlementTx  func()
	beforeRentalTx      func()
	beforeMaintenanceTx func()
}

func newMemStore() *memStore {
	return &memStore{
		rooms:   map[string]entity.Room{},
		tenants: map[string]entity.Tenant{},
		rentals: map[string]entity.Rental{},
		bills:   map[string]entity.Bill{},
		tickets: map[string]entity.Maintenance{},
	}
}

type storeSnapshot struct {
	rooms        map[string]entity.Room
	tenants      map[string]entity.Tenant
	rentals      map[string]entity.Rental
	bills        map[string]entity.Bill
	tickets      map[string]entity.Maintenance
	transactions []entity.Transaction
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storeSnapshot{
		rooms:        copyMap(s.rooms),
		tenants:      copyMap(s.tenants),
		rentals:      copyMap(s.rentals),
		bills:        copyMap(s.bills),
		tickets:      copyMap(s.tickets),
		transactions: append([]entity.Transaction(nil), s.transactions...),
	}
}

func (s *memStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = snap.rooms
	s.tenants = snap.tenants
	s.rentals = snap.rentals
	s.bills = snap.bills
	s.tickets = snap.tickets
	s.transactions = snap.transactions
}

// fakeTxRunner mimics transactional semantics with snapshot and restore: a
// failing callback leaves the store exactly as it was.
type fakeTxRunner struct {
	s *memStore
}

func runHook(hook *func()) {
	if h := *hook; h != nil {
		*hook = nil
		h()
	}
}

func (f *fakeTxRunner) RunRental(ctx context.Context, fn func(repository.RentalRepository, repository.RoomRepository, repository.TenantRepository, repository.BillRepository) error) error {
	runHook(&f.s.beforeRentalTx)
	snap := f.s.snapshot()
	if err := fn(&fakeRentals{s: f.s}, &fakeRooms{s: f.s}, &fakeTenants{s: f.s}, &fakeBills{s: f.s}); err != nil {
		f.s.restore(snap)
		return err
	}
	return nil
}

func (f *fakeTxRunner) RunSettlement(ctx context.Context, fn func(repository.BillRepository, repository.TransactionRepository) error) error {
	runHook(&f.s.beforeSettlementTx)
	snap := f.s.snapshot()
	if err := fn(&fakeBills{s: f.s}, &fakeLedger{s: f.s}); err != nil {
		f.s.restore(snap)
		return err
	}
	return nil
}

func (f *fakeTxRunner) RunMaintenance(ctx context.Context, fn func(repository.MaintenanceRepository, repository.TransactionRepository) error) error {
	runHook(&f.s.beforeMaintenanceTx)
	snap := f.s.snapshot()
	if err := fn(&fakeTickets{s: f.s}, &fakeLedger{s: f.s}); err != nil {
		f.s.restore(snap)
		return err
	}
	return nil
}

// ── rooms ─────────────────────────────────────────────────────────────────────

type fakeRooms struct {
	s *memStore
}

var _ repository.RoomRepository = (*fakeRooms)(nil)

func (f *fakeRooms) Create(_ context.Context, room *entity.Room) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.rooms {
		if r.Number == room.Number {
			return domain.ErrConflict
		}
	}
	f.s.rooms[room.ID] = *room
	return nil
}

func (f *fakeRooms) GetByID(_ context.Context, id string) (*entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if r, ok := f.s.rooms[id]; ok {
		cp := r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRooms) GetByNumber(_ context.Context, number string) (*entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.rooms {
		if r.Number == number {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRooms) List(_ context.Context) ([]*entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Room
	for _, r := range f.s.rooms {
		cp := r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRooms) ListByStatus(_ context.Context, status string) ([]*entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Room
	for _, r := range f.s.rooms {
		if r.Status == status {
			cp := r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRooms) CountByStatus(_ context.Context, status string) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n := 0
	for _, r := range f.s.rooms {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeRooms) Update(_ context.Context, room *entity.Room) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.rooms[room.ID] = *room
	return nil
}

func (f *fakeRooms) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.failRoomStatusUpdate; err != nil {
		return err
	}
	r := f.s.rooms[id]
	r.Status = status
	r.UpdatedAt = at
	f.s.rooms[id] = r
	return nil
}

func (f *fakeRooms) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.rooms, id)
	return nil
}

// ── tenants ───────────────────────────────────────────────────────────────────

type fakeTenants struct {
	s *memStore
}

var _ repository.TenantRepository = (*fakeTenants)(nil)

func (f *fakeTenants) Create(_ context.Context, tenant *entity.Tenant) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.tenants[tenant.ID] = *tenant
	return nil
}

func (f *fakeTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if t, ok := f.s.tenants[id]; ok {
		cp := t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTenants) List(_ context.Context) ([]*entity.Tenant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Tenant
	for _, t := range f.s.tenants {
		cp := t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTenants) Update(_ context.Context, tenant *entity.Tenant) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.tenants[tenant.ID] = *tenant
	return nil
}

func (f *fakeTenants) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.tenants, id)
	return nil
}

// ── rentals ───────────────────────────────────────────────────────────────────

type fakeRentals struct {
	s *memStore
}

var _ repository.RentalRepository = (*fakeRentals)(nil)

func (f *fakeRentals) Create(_ context.Context, rental *entity.Rental) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if rental.Status == entity.RentalStatusActive {
		for _, r := range f.s.rentals {
			if r.RoomID == rental.RoomID && r.Status == entity.RentalStatusActive {
				return domain.ErrConflict
			}
		}
	}
	f.s.rentals[rental.ID] = *rental
	return nil
}

func (f *fakeRentals) GetByID(_ context.Context, id string) (*entity.Rental, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if r, ok := f.s.rentals[id]; ok {
		cp := r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRentals) List(_ context.Context) ([]*entity.Rental, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Rental
	for _, r := range f.s.rentals {
		cp := r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRentals) ListActive(_ context.Context) ([]*entity.Rental, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Rental
	for _, r := range f.s.rentals {
		if r.Status == entity.RentalStatusActive {
			cp := r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRentals) GetActiveByRoom(_ context.Context, roomID string) (*entity.Rental, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.rentals {
		if r.RoomID == roomID && r.Status == entity.RentalStatusActive {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRentals) GetActiveByTenant(_ context.Context, tenantID string) (*entity.Rental, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.rentals {
		if r.TenantID == tenantID && r.Status == entity.RentalStatusActive {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRentals) End(_ context.Context, rental *entity.Rental) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored, ok := f.s.rentals[rental.ID]
	if !ok || stored.Status != entity.RentalStatusActive {
		return domain.ErrInvalidState
	}
	stored.Status = rental.Status
	stored.EndDate = rental.EndDate
	stored.UpdatedAt = rental.UpdatedAt
	f.s.rentals[rental.ID] = stored
	return nil
}

// ── bills ─────────────────────────────────────────────────────────────────────

type fakeBills struct {
	s *memStore
}

var _ repository.BillRepository = (*fakeBills)(nil)

func (f *fakeBills) Create(_ context.Context, bill *entity.Bill) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, b := range f.s.bills {
		if b.RentalID == bill.RentalID && b.Month == bill.Month && b.Year == bill.Year && b.Kind == bill.Kind {
			return domain.ErrConflict
		}
	}
	f.s.bills[bill.ID] = *bill
	return nil
}

func (f *fakeBills) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if b, ok := f.s.bills[id]; ok {
		cp := b
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeBills) GetByPeriod(_ context.Context, rentalID string, month, year int, kind string) (*entity.Bill, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, b := range f.s.bills {
		if b.RentalID == rentalID && b.Month == month && b.Year == year && b.Kind == kind {
			cp := b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBills) List(_ context.Context) ([]*entity.Bill, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Bill
	for _, b := range f.s.bills {
		cp := b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBills) ListByRental(_ context.Context, rentalID string) ([]*entity.Bill, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Bill
	for _, b := range f.s.bills {
		if b.RentalID == rentalID {
			cp := b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBills) ListUnpaidOldest(_ context.Context, limit int) ([]*entity.Bill, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Bill
	for _, b := range f.s.bills {
		if b.Status == entity.BillStatusUnpaid {
			cp := b
			out = append(out, &cp)
		}
	}
	// oldest period first
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Year < out[i].Year || (out[j].Year == out[i].Year && out[j].Month < out[i].Month) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBills) CountByStatus(_ context.Context, status string) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n := 0
	for _, b := range f.s.bills {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeBills) Update(_ context.Context, bill *entity.Bill) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.bills[bill.ID] = *bill
	return nil
}

func (f *fakeBills) MarkPaid(_ context.Context, bill *entity.Bill) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored, ok := f.s.bills[bill.ID]
	if !ok || stored.Status != entity.BillStatusUnpaid {
		return domain.ErrInvalidState
	}
	stored.Status = bill.Status
	stored.PaymentMethod = bill.PaymentMethod
	stored.PaidAt = bill.PaidAt
	stored.UpdatedAt = bill.UpdatedAt
	f.s.bills[bill.ID] = stored
	return nil
}

// ── ledger ────────────────────────────────────────────────────────────────────

type fakeLedger struct {
	s *memStore
}

var _ repository.TransactionRepository = (*fakeLedger)(nil)

func (f *fakeLedger) Create(_ context.Context, tx *entity.Transaction) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.failLedgerCreate; err != nil {
		return err
	}
	f.s.transactions = append(f.s.transactions, *tx)
	return nil
}

func (f *fakeLedger) List(_ context.Context) ([]*entity.Transaction, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]*entity.Transaction, 0, len(f.s.transactions))
	for i := len(f.s.transactions) - 1; i >= 0; i-- {
		cp := f.s.transactions[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeLedger) ListRecent(ctx context.Context, limit int) ([]*entity.Transaction, error) {
	out, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLedger) SumByKindBetween(_ context.Context, kind string, from, to time.Time) (decimal.Decimal, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	total := decimal.Zero
	for _, tx := range f.s.transactions {
		if tx.Kind != kind {
			continue
		}
		if tx.Timestamp.Before(from) || tx.Timestamp.After(to) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total, nil
}

// ── maintenance ───────────────────────────────────────────────────────────────

type fakeTickets struct {
	s *memStore
}

var _ repository.MaintenanceRepository = (*fakeTickets)(nil)

func (f *fakeTickets) Create(_ context.Context, m *entity.Maintenance) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.tickets[m.ID] = *m
	return nil
}

func (f *fakeTickets) GetByID(_ context.Context, id string) (*entity.Maintenance, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if m, ok := f.s.tickets[id]; ok {
		cp := m
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTickets) List(_ context.Context) ([]*entity.Maintenance, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Maintenance
	for _, m := range f.s.tickets {
		cp := m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTickets) CountNotDone(_ context.Context) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n := 0
	for _, m := range f.s.tickets {
		if m.Status != entity.MaintenanceStatusDone {
			n++
		}
	}
	return n, nil
}

func (f *fakeTickets) Update(_ context.Context, m *entity.Maintenance) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.tickets[m.ID] = *m
	return nil
}

func (f *fakeTickets) LogExpense(_ context.Context, m *entity.Maintenance) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored, ok := f.s.tickets[m.ID]
	if !ok || stored.ExpenseLogged {
		return domain.ErrInvalidState
	}
	cp := *m
	cp.ExpenseLogged = true
	f.s.tickets[m.ID] = cp
	return nil
}

// ── proof store ───────────────────────────────────────────────────────────────

type fakeProofStore struct {
	saved map[string][]byte
}

func newFakeProofStore() *fakeProofStore {
	return &fakeProofStore{saved: map[string][]byte{}}
}

func (f *fakeProofStore) Save(_ context.Context, billID string, data []byte, ext string) (string, error) {
	ref := billID + "." + ext
	f.saved[ref] = data
	return ref, nil
}

// ── fixture ───────────────────────────────────────────────────────────────────

// fixture bundles the store, fakes and a fixed clock for use case tests.
type fixture struct {
	store    *memStore
	txRunner *fakeTxRunner
	rooms    *fakeRooms
	tenants  *fakeTenants
	rentals  *fakeRentals
	bills    *fakeBills
	ledger   *fakeLedger
	tickets  *fakeTickets
	clk      *clock.Fixed
}

func newFixture() *fixture {
	s := newMemStore()
	return &fixture{
		store:    s,
		txRunner: &fakeTxRunner{s: s},
		rooms:    &fakeRooms{s: s},
		tenants:  &fakeTenants{s: s},
		rentals:  &fakeRentals{s: s},
		bills:    &fakeBills{s: s},
		ledger:   &fakeLedger{s: s},
		tickets:  &fakeTickets{s: s},
		clk:      clock.NewFixed(time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)),
	}
}

func (f *fixture) addRoom(id, number string, price int64, status string) {
	now := f.clk.Now()
	f.store.rooms[id] = entity.Room{
		ID: id, Number: number, Price: decimal.NewFromInt(price),
		Status: status, CreatedAt: now, UpdatedAt: now,
	}
}

func (f *fixture) addTenant(id, name string) {
	now := f.clk.Now()
	f.store.tenants[id] = entity.Tenant{
		ID: id, Name: name, Phone: "0812000000", IDNumber: "3174000000000001",
		CreatedAt: now, UpdatedAt: now,
	}
}

func (f *fixture) addRental(id, tenantID, roomID string, price int64, status string) {
	now := f.clk.Now()
	f.store.rentals[id] = entity.Rental{
		ID: id, TenantID: tenantID, RoomID: roomID, StartDate: now,
		Price: decimal.NewFromInt(price), Status: status,
		CreatedAt: now, UpdatedAt: now,
	}
}

func (f *fixture) addBill(id, rentalID string, month, year int, amount int64, kind, status string) {
	now := f.clk.Now()
	f.store.bills[id] = entity.Bill{
		ID: id, RentalID: rentalID, Month: month, Year: year,
		Amount: decimal.NewFromInt(amount), Kind: kind, Status: status,
		CreatedAt: now, UpdatedAt: now,
	}
}
