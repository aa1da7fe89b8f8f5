package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshayam/wellness-store.git/internal/catalog"
	"github.com/akshayam/wellness-store.git/internal/users"
)

// ---- in-memory fakes ----

type fakeProducts struct {
	byID map[string]*catalog.Product
}

func (f *fakeProducts) GetProduct(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) AddStock(_ context.Context, id string, delta int) error {
	p, ok := f.byID[id]
	if !ok {
		return catalog.ErrNotFound
	}
	p.Quantity += delta
	return nil
}

func (f *fakeProducts) DeductIfAvailable(_ context.Context, id string, qty int) (bool, int, error) {
	p, ok := f.byID[id]
	if !ok {
		return false, 0, catalog.ErrNotFound
	}
	if p.Quantity < qty {
		return false, p.Quantity, nil
	}
	p.Quantity -= qty
	return true, p.Quantity, nil
}

func (f *fakeProducts) quantities() map[string]int {
	out := map[string]int{}
	for id, p := range f.byID {
		out[id] = p.Quantity
	}
	return out
}

type fakeUsers struct {
	byEmail map[string]*users.User
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*users.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, users.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Insert(_ context.Context, u *users.User) error {
	if u.ID == "" {
		u.ID = "user-" + u.Email
	}
	u.CreatedAt = time.Now()
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUsers) SetPasswordHash(_ context.Context, id, hash string) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.PasswordHash = hash
		}
	}
	return nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id, name, email, phone, address string) error {
	for old, u := range f.byEmail {
		if u.ID == id {
			u.Name, u.Email, u.Phone, u.Address = name, email, phone, address
			if old != email {
				delete(f.byEmail, old)
				f.byEmail[email] = u
			}
			return nil
		}
	}
	return nil
}

type fakeOrders struct {
	byID map[string]*Order
}

func (f *fakeOrders) Insert(_ context.Context, o *Order) error {
	cp := *o
	f.byID[o.ID] = &cp
	return nil
}

func (f *fakeOrders) Get(_ context.Context, id string) (*Order, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	return &cp, nil
}

func (f *fakeOrders) SaveEdit(_ context.Context, id string, items []OrderItem, totalCents int64, cust *CustomerSnapshot) (*Order, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Items = append([]OrderItem(nil), items...)
	o.TotalCents = totalCents
	o.UpdatedAt = time.Now()
	if cust != nil {
		o.UserName, o.UserEmail, o.UserPhone, o.UserAddress = cust.Name, cust.Email, cust.Phone, cust.Address
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id string, st Status) (*Order, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Status = st
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeOrders) ListByEmail(_ context.Context, email string) ([]Order, error) {
	out := []Order{}
	for _, o := range f.byID {
		if o.UserEmail == email {
			out = append(out, *o)
		}
	}
	return out, nil
}

type fakeSettings struct {
	minCents int64
	present  bool
}

func (f *fakeSettings) MinimumOrderValue(context.Context) (int64, bool, error) {
	return f.minCents, f.present, nil
}

// fakeHasher makes hashes deterministic and cheap.
type fakeHasher struct{}

func (fakeHasher) Hash(pw string) (string, error) { return "h:" + pw, nil }
func (fakeHasher) Verify(pw, hash string) bool    { return hash == "h:"+pw }

type fakeNotifier struct {
	dispatched []Order
}

func (f *fakeNotifier) Dispatch(o Order) { f.dispatched = append(f.dispatched, o) }

type testEnv struct {
	engine   *Engine
	products *fakeProducts
	orders   *fakeOrders
	users    *fakeUsers
	settings *fakeSettings
	notify   *fakeNotifier
}

func newTestEnv() *testEnv {
	env := &testEnv{
		products: &fakeProducts{byID: map[string]*catalog.Product{}},
		orders:   &fakeOrders{byID: map[string]*Order{}},
		users:    &fakeUsers{byEmail: map[string]*users.User{}},
		settings: &fakeSettings{},
		notify:   &fakeNotifier{},
	}
	env.engine = &Engine{
		Orders:   env.orders,
		Products: env.products,
		Users:    env.users,
		Settings: env.settings,
		Stock:    &catalog.StockValidator{Products: env.products},
		Hasher:   fakeHasher{},
		Notify:   env.notify,
	}
	return env
}

func (e *testEnv) addProduct(id, name string, priceCents int64, qty int) {
	e.products.byID[id] = &catalog.Product{ID: id, Name: name, PriceCents: priceCents, Quantity: qty}
}

func item(productID, name string, qty int, priceCents int64) OrderItem {
	return OrderItem{
		ProductID:   productID,
		ProductName: name,
		Quantity:    qty,
		PriceCents:  priceCents,
		TotalCents:  priceCents * int64(qty),
	}
}

var customer = CustomerInfo{
	Name: "Asha", Email: "asha@example.com", Phone: "+91-555", Address: "12 Lotus Rd", Password: "secret",
}

// ---- create ----

func TestCreateOrderBelowMinimumRejected(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	env.settings.minCents, env.settings.present = 50000, true

	_, err := env.engine.CreateOrder(context.Background(), customer, []OrderItem{
		item("p1", "Tea", 2, 15000),
	})
	require.Error(t, err)
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindValidation, oe.Kind)
	assert.Contains(t, oe.Message, "₹500")
	assert.Contains(t, oe.Message, "₹300")

	// nothing committed
	assert.Empty(t, env.orders.byID)
	assert.Equal(t, 10, env.products.byID["p1"].Quantity)
	assert.Empty(t, env.notify.dispatched)
}

func TestCreateOrderAtExactThresholdAccepted(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	env.addProduct("p2", "Honey", 25000, 5)
	env.settings.minCents, env.settings.present = 55000, true

	o, err := env.engine.CreateOrder(context.Background(), customer, []OrderItem{
		item("p1", "Tea", 2, 15000),   // 300
		item("p2", "Honey", 1, 25000), // 250 -> 550 == threshold
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, int64(55000), o.TotalCents)
	assert.Equal(t, 8, env.products.byID["p1"].Quantity)
	assert.Equal(t, 4, env.products.byID["p2"].Quantity)
}

func TestCreateOrderOneUnitBelowThresholdRejected(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 54999, 10)
	env.settings.minCents, env.settings.present = 55000, true

	_, err := env.engine.CreateOrder(context.Background(), customer, []OrderItem{
		item("p1", "Tea", 1, 54999),
	})
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindValidation, oe.Kind)
}

// A zero or negative quantity must never reach the stock math: a
// negative deduction would increment stock and lower the trusted total.
func TestCreateOrderNonPositiveQuantityRejected(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)

	for _, qty := range []int{0, -3} {
		_, err := env.engine.CreateOrder(context.Background(), customer, []OrderItem{
			{ProductID: "p1", ProductName: "Tea", Quantity: qty, PriceCents: 15000, TotalCents: int64(qty) * 15000},
		})
		var oe *Error
		require.ErrorAs(t, err, &oe)
		assert.Equal(t, KindValidation, oe.Kind)
		assert.Contains(t, oe.Message, "Invalid quantity")
	}
	assert.Empty(t, env.orders.byID)
	assert.Equal(t, 10, env.products.byID["p1"].Quantity)
}

func TestCreateOrderStockShortfall(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 1)

	_, err := env.engine.CreateOrder(context.Background(), customer, []OrderItem{
		item("p1", "Tea", 2, 15000),
	})
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindValidation, oe.Kind)
	require.Len(t, oe.InvalidItems, 1)
	assert.Equal(t, 1, oe.InvalidItems[0].AvailableQuantity)
	assert.Equal(t, 2, oe.InvalidItems[0].RequestedQuantity)
	assert.Empty(t, env.orders.byID)
	assert.Equal(t, 1, env.products.byID["p1"].Quantity)
}

func TestCreateOrderSuccess(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)

	o, err := env.engine.CreateOrder(context.Background(), customer, []OrderItem{
		item("p1", "Tea", 2, 15000),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "Asha", o.UserName)
	assert.Equal(t, int64(30000), o.TotalCents)
	assert.Equal(t, 8, env.products.byID["p1"].Quantity)

	// implicit registration
	u := env.users.byEmail["asha@example.com"]
	require.NotNil(t, u)
	assert.Equal(t, "h:secret", u.PasswordHash)
	assert.Equal(t, u.ID, o.UserID)

	// dispatcher got a snapshot of the committed order
	require.Len(t, env.notify.dispatched, 1)
	assert.Equal(t, o.ID, env.notify.dispatched[0].ID)
}

func TestCreateOrderExistingUserOnlyPasswordOverwritten(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	env.users.byEmail["asha@example.com"] = &users.User{
		ID: "u1", Name: "Old Name", Email: "asha@example.com",
		Phone: "old-phone", Address: "old-address", PasswordHash: "h:old",
	}

	o, err := env.engine.CreateOrder(context.Background(), customer, []OrderItem{
		item("p1", "Tea", 1, 15000),
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", o.UserID)

	u := env.users.byEmail["asha@example.com"]
	assert.Equal(t, "h:secret", u.PasswordHash) // overwritten
	assert.Equal(t, "Old Name", u.Name)         // untouched
	assert.Equal(t, "old-phone", u.Phone)
}

func TestCreateOrderNoMinimumConfigured(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 100, 5)
	env.settings.present = false

	_, err := env.engine.CreateOrder(context.Background(), customer, []OrderItem{
		item("p1", "Tea", 1, 100),
	})
	require.NoError(t, err)
}

// Validation at T with no intervening writes implies create at T cannot
// fail on stock grounds.
func TestValidateThenCreateMonotonic(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 2)

	res, err := env.engine.Stock.Validate(context.Background(), []catalog.StockRequestItem{
		{ProductID: "p1", Quantity: 2},
	})
	require.NoError(t, err)
	require.True(t, res.Valid)

	_, err = env.engine.CreateOrder(context.Background(), customer, []OrderItem{
		item("p1", "Tea", 2, 15000),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, env.products.byID["p1"].Quantity)
}

// ---- edit ----

func (e *testEnv) placeOrder(t *testing.T, items ...OrderItem) *Order {
	t.Helper()
	o, err := e.engine.CreateOrder(context.Background(), customer, items)
	require.NoError(t, err)
	return o
}

func TestEditOrderNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.engine.EditOrder(context.Background(), "4dbd41a0-9f5e-4e62-9a3c-000000000000", EditRequest{Admin: true})
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindNotFound, oe.Kind)
}

func TestEditOrderWrongPassword(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 2, 15000))
	before := env.products.quantities()

	_, err := env.engine.EditOrder(context.Background(), o.ID, EditRequest{
		Items:    []OrderItem{item("p1", "Tea", 1, 15000)},
		Email:    customer.Email,
		Password: "wrong",
	})
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindUnauthorized, oe.Kind)
	assert.Equal(t, before, env.products.quantities())

	stored, _ := env.orders.Get(context.Background(), o.ID)
	assert.Equal(t, o.TotalCents, stored.TotalCents)
	assert.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestEditOrderOwnershipEnforced(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 2, 15000))

	env.users.byEmail["mallory@example.com"] = &users.User{
		ID: "u-mal", Email: "mallory@example.com", PasswordHash: "h:pw",
	}
	_, err := env.engine.EditOrder(context.Background(), o.ID, EditRequest{
		Items:    []OrderItem{item("p1", "Tea", 1, 15000)},
		Email:    "mallory@example.com",
		Password: "pw",
	})
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindForbidden, oe.Kind)
}

func TestEditOrderRejectedForShippedStatus(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 2, 15000))
	_, err := env.engine.UpdateStatus(context.Background(), o.ID, "shipped")
	require.NoError(t, err)

	_, err = env.engine.EditOrder(context.Background(), o.ID, EditRequest{
		Items: []OrderItem{item("p1", "Tea", 1, 15000)},
		Admin: true,
	})
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindValidation, oe.Kind)
	assert.Contains(t, oe.Message, "shipped")
}

func TestEditOrderIdenticalItemsIsIdempotent(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 2, 15000))
	before := env.products.quantities()

	updated, err := env.engine.EditOrder(context.Background(), o.ID, EditRequest{
		Items:    []OrderItem{item("p1", "Tea", 2, 15000)},
		Email:    customer.Email,
		Password: customer.Password,
	})
	require.NoError(t, err)
	assert.Equal(t, o.TotalCents, updated.TotalCents)
	assert.Equal(t, before, env.products.quantities())
}

// Reducing a quantity must never spuriously fail: the restore happens
// before re-validation.
func TestEditOrderReduceQuantity(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 0) // everything on hand is in the order
	env.products.byID["p1"].Quantity = 0
	env.orders.byID["o1"] = &Order{
		ID: "o1", UserEmail: customer.Email, Status: StatusPending,
		Items:      []OrderItem{item("p1", "Tea", 3, 15000)},
		TotalCents: 45000,
	}

	updated, err := env.engine.EditOrder(context.Background(), "o1", EditRequest{
		Items: []OrderItem{item("p1", "Tea", 1, 15000)},
		Admin: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15000), updated.TotalCents)
	// 0 + 3 restored - 1 deducted
	assert.Equal(t, 2, env.products.byID["p1"].Quantity)
}

func TestEditOrderNonPositiveQuantityRejected(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 2, 15000))
	before := env.products.quantities()

	_, err := env.engine.EditOrder(context.Background(), o.ID, EditRequest{
		Items: []OrderItem{{ProductID: "p1", ProductName: "Tea", Quantity: -1, PriceCents: 15000, TotalCents: -15000}},
		Admin: true,
	})
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindValidation, oe.Kind)
	assert.Contains(t, oe.Message, "Invalid quantity")
	assert.Equal(t, before, env.products.quantities())

	stored, _ := env.orders.Get(context.Background(), o.ID)
	assert.Equal(t, int64(30000), stored.TotalCents)
}

func TestEditOrderShortfallLeavesStockUnchanged(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 1)
	env.orders.byID["o1"] = &Order{
		ID: "o1", UserEmail: customer.Email, Status: StatusPending,
		Items:      []OrderItem{item("p1", "Tea", 2, 15000)},
		TotalCents: 30000,
	}
	before := env.products.quantities()

	_, err := env.engine.EditOrder(context.Background(), "o1", EditRequest{
		Items: []OrderItem{item("p1", "Tea", 10, 15000)},
		Admin: true,
	})
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindValidation, oe.Kind)
	assert.Contains(t, oe.Message, "has only 3 items available, but you requested 10")
	assert.Equal(t, before, env.products.quantities())
}

// A failed minimum-order check must leave product quantities bit-for-bit
// where they were before the attempt.
func TestEditOrderMinimumFailureRestoresStock(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 4, 15000)) // 600
	env.settings.minCents, env.settings.present = 50000, true
	before := env.products.quantities()

	_, err := env.engine.EditOrder(context.Background(), o.ID, EditRequest{
		Items:    []OrderItem{item("p1", "Tea", 1, 15000)}, // 150 < 500
		Email:    customer.Email,
		Password: customer.Password,
	})
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindValidation, oe.Kind)
	assert.Contains(t, oe.Message, "₹500")
	assert.Contains(t, oe.Message, "₹150")
	assert.Equal(t, before, env.products.quantities())

	stored, _ := env.orders.Get(context.Background(), o.ID)
	assert.Equal(t, int64(60000), stored.TotalCents)
}

// Admin edits skip the minimum-order re-check entirely.
func TestAdminEditBelowMinimumAllowed(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 4, 15000))
	env.settings.minCents, env.settings.present = 50000, true

	updated, err := env.engine.EditOrder(context.Background(), o.ID, EditRequest{
		Items: []OrderItem{item("p1", "Tea", 1, 15000)},
		Admin: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15000), updated.TotalCents)
}

func TestEditOrderUnknownProduct(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 2, 15000))
	before := env.products.quantities()

	_, err := env.engine.EditOrder(context.Background(), o.ID, EditRequest{
		Items: []OrderItem{item("ghost", "Ghost Oil", 1, 100)},
		Admin: true,
	})
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindValidation, oe.Kind)
	assert.Contains(t, oe.Message, "Ghost Oil")
	assert.Equal(t, before, env.products.quantities())
}

func TestSelfEditRehashesPasswordOnlyWhenChanged(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 2, 15000))

	// same password: hash untouched
	info := customer
	_, err := env.engine.EditOrder(context.Background(), o.ID, EditRequest{
		Items:    []OrderItem{item("p1", "Tea", 2, 15000)},
		Email:    customer.Email,
		Password: customer.Password,
		UserInfo: &info,
	})
	require.NoError(t, err)
	assert.Equal(t, "h:secret", env.users.byEmail[customer.Email].PasswordHash)

	// changed password: rehash
	info2 := customer
	info2.Password = "brand-new"
	_, err = env.engine.EditOrder(context.Background(), o.ID, EditRequest{
		Items:    []OrderItem{item("p1", "Tea", 2, 15000)},
		Email:    customer.Email,
		Password: customer.Password,
		UserInfo: &info2,
	})
	require.NoError(t, err)
	assert.Equal(t, "h:brand-new", env.users.byEmail[customer.Email].PasswordHash)
}

func TestAdminEditNeverTouchesPassword(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 2, 15000))

	info := customer
	info.Name = "Renamed By Admin"
	info.Password = "attacker-chosen"
	_, err := env.engine.EditOrder(context.Background(), o.ID, EditRequest{
		Items:    []OrderItem{item("p1", "Tea", 2, 15000)},
		Admin:    true,
		UserInfo: &info,
	})
	require.NoError(t, err)

	u := env.users.byEmail[customer.Email]
	require.NotNil(t, u)
	assert.Equal(t, "Renamed By Admin", u.Name)
	assert.Equal(t, "h:secret", u.PasswordHash) // credentials preserved
}

// ---- status / delete / history ----

func TestUpdateStatusUnknownRejected(t *testing.T) {
	env := newTestEnv()
	_, err := env.engine.UpdateStatus(context.Background(), "any", "lost-in-transit")
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindValidation, oe.Kind)
}

func TestUpdateStatusNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.engine.UpdateStatus(context.Background(), "missing", "confirmed")
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindNotFound, oe.Kind)
}

func TestDeleteOrderRestoresStockWhileEditable(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 4, 15000))
	require.Equal(t, 6, env.products.byID["p1"].Quantity)

	require.NoError(t, env.engine.DeleteOrder(context.Background(), o.ID))
	assert.Equal(t, 10, env.products.byID["p1"].Quantity)
	assert.Empty(t, env.orders.byID)
}

func TestDeleteShippedOrderKeepsStock(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	o := env.placeOrder(t, item("p1", "Tea", 4, 15000))
	_, err := env.engine.UpdateStatus(context.Background(), o.ID, "shipped")
	require.NoError(t, err)

	require.NoError(t, env.engine.DeleteOrder(context.Background(), o.ID))
	assert.Equal(t, 6, env.products.byID["p1"].Quantity)
}

func TestUserOrdersRequiresValidCredentials(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", "Tea", 15000, 10)
	env.placeOrder(t, item("p1", "Tea", 1, 15000))

	_, err := env.engine.UserOrders(context.Background(), customer.Email, "wrong")
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindUnauthorized, oe.Kind)

	list, err := env.engine.UserOrders(context.Background(), customer.Email, customer.Password)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
