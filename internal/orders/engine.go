package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/akshayam/wellness-store.git/internal/auth"
	"github.com/akshayam/wellness-store.git/internal/catalog"
	"github.com/akshayam/wellness-store.git/internal/users"
)

// Store collaborators, kept narrow so the engine can be exercised
// against in-memory fakes.

type OrderStore interface {
	Insert(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	SaveEdit(ctx context.Context, id string, items []OrderItem, totalCents int64, cust *CustomerSnapshot) (*Order, error)
	UpdateStatus(ctx context.Context, id string, st Status) (*Order, error)
	Delete(ctx context.Context, id string) error
	ListByEmail(ctx context.Context, email string) ([]Order, error)
}

type ProductStore interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	AddStock(ctx context.Context, id string, delta int) error
	DeductIfAvailable(ctx context.Context, id string, qty int) (bool, int, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	Insert(ctx context.Context, u *users.User) error
	SetPasswordHash(ctx context.Context, id, hash string) error
	UpdateProfile(ctx context.Context, id, name, email, phone, address string) error
}

type SettingStore interface {
	MinimumOrderValue(ctx context.Context) (int64, bool, error)
}

// Notifier runs detached from the request path; it must never surface
// an error back into order creation.
type Notifier interface {
	Dispatch(o Order)
}

type Engine struct {
	Orders   OrderStore
	Products ProductStore
	Users    UserStore
	Settings SettingStore
	Stock    *catalog.StockValidator
	Hasher   auth.Hasher
	Notify   Notifier
}

// rupees renders cents as whole currency units for user-facing messages.
func rupees(cents int64) string {
	return fmt.Sprintf("₹%.0f", float64(cents)/100)
}

// CreateOrder runs the checkout workflow: stock validation, user
// upsert, minimum-order check, persistence, stock decrement, and
// notification scheduling. All checks precede all writes, so a failure
// commits nothing.
func (e *Engine) CreateOrder(ctx context.Context, info CustomerInfo, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, validationErr("Order must contain at least one item")
	}
	if err := checkQuantities(items); err != nil {
		return nil, err
	}

	req := make([]catalog.StockRequestItem, 0, len(items))
	for _, it := range items {
		req = append(req, catalog.StockRequestItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	res, err := e.Stock.Validate(ctx, req)
	if err != nil {
		return nil, faultErr(err)
	}
	if !res.Valid {
		return nil, &Error{Kind: KindValidation, Message: res.Message, InvalidItems: res.InvalidItems}
	}

	userID, err := e.upsertUser(ctx, info)
	if err != nil {
		return nil, faultErr(err)
	}

	var total int64
	for _, it := range items {
		total += it.TotalCents
	}

	min, ok, err := e.Settings.MinimumOrderValue(ctx)
	if err != nil {
		return nil, faultErr(err)
	}
	if ok && total < min {
		return nil, validationErr(fmt.Sprintf(
			"Minimum order value is %s. Your cart total is %s. Please add more items to meet the minimum order requirement.",
			rupees(min), rupees(total)))
	}

	now := time.Now().UTC()
	o := &Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		UserName:    info.Name,
		UserEmail:   info.Email,
		UserPhone:   info.Phone,
		UserAddress: info.Address,
		Items:       items,
		TotalCents:  total,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.Orders.Insert(ctx, o); err != nil {
		return nil, faultErr(err)
	}

	// Independent per-item decrements. The conditional update keeps the
	// common path from driving quantity negative; losing the race falls
	// back to a plain decrement because the order is already committed.
	for _, it := range items {
		ok, _, err := e.Products.DeductIfAvailable(ctx, it.ProductID, it.Quantity)
		if err != nil {
			log.Printf("order %s: stock decrement %s: %v", o.ID, it.ProductID, err)
			continue
		}
		if !ok {
			log.Printf("order %s: stock race lost on product %s, applying unconditional decrement", o.ID, it.ProductID)
			if err := e.Products.AddStock(ctx, it.ProductID, -it.Quantity); err != nil {
				log.Printf("order %s: stock decrement %s: %v", o.ID, it.ProductID, err)
			}
		}
	}

	if e.Notify != nil {
		e.Notify.Dispatch(*o)
	}
	return o, nil
}

// checkQuantities rejects non-positive line quantities before any stock
// math runs; a negative quantity would otherwise slip past validation
// and increment stock on deduction.
func checkQuantities(items []OrderItem) error {
	for _, it := range items {
		if it.Quantity < 1 {
			return validationErr(fmt.Sprintf("Invalid quantity %d for product %s", it.Quantity, it.ProductName))
		}
	}
	return nil
}

// upsertUser creates the user on first order, or overwrites only the
// password hash when the email already exists.
func (e *Engine) upsertUser(ctx context.Context, info CustomerInfo) (string, error) {
	hash, err := e.Hasher.Hash(info.Password)
	if err != nil {
		return "", err
	}
	existing, err := e.Users.FindByEmail(ctx, info.Email)
	switch {
	case err == nil:
		if err := e.Users.SetPasswordHash(ctx, existing.ID, hash); err != nil {
			return "", err
		}
		return existing.ID, nil
	case errors.Is(err, users.ErrNotFound):
		u := &users.User{
			Name:         info.Name,
			Email:        info.Email,
			Phone:        info.Phone,
			Address:      info.Address,
			PasswordHash: hash,
		}
		if err := e.Users.Insert(ctx, u); err != nil {
			return "", err
		}
		return u.ID, nil
	default:
		return "", err
	}
}

// EditRequest drives both edit variants. Admin edits skip the ownership
// check and never touch the owning user's password hash.
type EditRequest struct {
	Items    []OrderItem
	Email    string
	Password string
	UserInfo *CustomerInfo
	Admin    bool
}

// EditOrder re-points an order at a new item list while keeping the
// net stock effect consistent: original quantities are restored before
// the new ones are validated and deducted, and every failure after the
// restore reverses it symmetrically.
func (e *Engine) EditOrder(ctx context.Context, orderID string, req EditRequest) (*Order, error) {
	order, err := e.Orders.Get(ctx, orderID)
	if errors.Is(err, ErrNotFound) {
		return nil, notFoundErr("Order not found")
	}
	if err != nil {
		return nil, faultErr(err)
	}

	if !order.Status.Editable() {
		return nil, validationErr(fmt.Sprintf(
			"Cannot edit order with status '%s'. Orders can only be edited when status is 'pending' or 'confirmed'.",
			order.Status))
	}
	if err := checkQuantities(req.Items); err != nil {
		return nil, err
	}

	var owner *users.User
	if !req.Admin {
		owner, err = e.Users.FindByEmail(ctx, req.Email)
		if errors.Is(err, users.ErrNotFound) || (err == nil && !e.Hasher.Verify(req.Password, owner.PasswordHash)) {
			return nil, unauthorizedErr("Invalid email or password")
		}
		if err != nil {
			return nil, faultErr(err)
		}
		if order.UserEmail != req.Email {
			return nil, forbiddenErr("You can only edit your own orders")
		}
	}

	// every new line item's product must exist before any stock moves
	for _, it := range req.Items {
		if _, err := e.Products.GetProduct(ctx, it.ProductID); err != nil {
			if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, catalog.ErrInvalidID) {
				return nil, validationErr(fmt.Sprintf("Product %s not found", it.ProductName))
			}
			return nil, faultErr(err)
		}
	}

	// restore the original decrement so shrinking or keeping a quantity
	// can never spuriously fail validation
	e.adjustStock(ctx, order.Items, +1)

	for _, it := range req.Items {
		p, err := e.Products.GetProduct(ctx, it.ProductID)
		if err != nil {
			e.adjustStock(ctx, order.Items, -1)
			return nil, faultErr(err)
		}
		if p.Quantity < it.Quantity {
			e.adjustStock(ctx, order.Items, -1)
			return nil, validationErr(fmt.Sprintf(
				"%s has only %d items available, but you requested %d",
				p.Name, p.Quantity, it.Quantity))
		}
	}

	e.adjustStock(ctx, req.Items, -1)

	var total int64
	for _, it := range req.Items {
		total += it.TotalCents
	}

	if !req.Admin {
		min, ok, err := e.Settings.MinimumOrderValue(ctx)
		if err != nil {
			e.adjustStock(ctx, req.Items, +1)
			e.adjustStock(ctx, order.Items, -1)
			return nil, faultErr(err)
		}
		if ok && total < min {
			e.adjustStock(ctx, req.Items, +1)
			e.adjustStock(ctx, order.Items, -1)
			return nil, validationErr(fmt.Sprintf(
				"Minimum order value is %s. Your updated cart total is %s. Please add more items to meet the minimum order requirement.",
				rupees(min), rupees(total)))
		}
	}

	var snapshot *CustomerSnapshot
	if req.UserInfo != nil {
		snapshot = &CustomerSnapshot{
			Name:    req.UserInfo.Name,
			Email:   req.UserInfo.Email,
			Phone:   req.UserInfo.Phone,
			Address: req.UserInfo.Address,
		}
		if err := e.updateCustomer(ctx, order, owner, req); err != nil {
			return nil, faultErr(err)
		}
	}

	updated, err := e.Orders.SaveEdit(ctx, orderID, req.Items, total, snapshot)
	if errors.Is(err, ErrNotFound) {
		return nil, notFoundErr("Order not found")
	}
	if err != nil {
		return nil, faultErr(err)
	}
	return updated, nil
}

// adjustStock applies sign*quantity for every item; errors are logged,
// not propagated, to keep the restore/deduct sequences symmetric.
func (e *Engine) adjustStock(ctx context.Context, items []OrderItem, sign int) {
	for _, it := range items {
		if err := e.Products.AddStock(ctx, it.ProductID, sign*it.Quantity); err != nil {
			log.Printf("stock adjust %s by %d: %v", it.ProductID, sign*it.Quantity, err)
		}
	}
}

// updateCustomer syncs the user record with the edited info. Admin
// edits deliberately leave password_hash alone so the customer's
// credentials survive; self-service rehashes only when the supplied
// plaintext no longer matches.
func (e *Engine) updateCustomer(ctx context.Context, order *Order, owner *users.User, req EditRequest) error {
	info := req.UserInfo
	if req.Admin {
		u, err := e.Users.FindByEmail(ctx, order.UserEmail)
		if errors.Is(err, users.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return e.Users.UpdateProfile(ctx, u.ID, info.Name, info.Email, info.Phone, info.Address)
	}

	if err := e.Users.UpdateProfile(ctx, owner.ID, info.Name, info.Email, info.Phone, info.Address); err != nil {
		return err
	}
	if !e.Hasher.Verify(info.Password, owner.PasswordHash) {
		hash, err := e.Hasher.Hash(info.Password)
		if err != nil {
			return err
		}
		return e.Users.SetPasswordHash(ctx, owner.ID, hash)
	}
	return nil
}

func (e *Engine) UpdateStatus(ctx context.Context, orderID string, status string) (*Order, error) {
	st := Status(status)
	if !st.Known() {
		return nil, validationErr(fmt.Sprintf("Invalid status '%s'", status))
	}
	o, err := e.Orders.UpdateStatus(ctx, orderID, st)
	if errors.Is(err, ErrNotFound) {
		return nil, notFoundErr("Order not found")
	}
	if err != nil {
		return nil, faultErr(err)
	}
	return o, nil
}

// DeleteOrder removes an order; while the order is still editable its
// stock decrement is undone first so inventory is conserved.
func (e *Engine) DeleteOrder(ctx context.Context, orderID string) error {
	o, err := e.Orders.Get(ctx, orderID)
	if errors.Is(err, ErrNotFound) {
		return notFoundErr("Order not found")
	}
	if err != nil {
		return faultErr(err)
	}
	if o.Status.Editable() {
		e.adjustStock(ctx, o.Items, +1)
	}
	if err := e.Orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundErr("Order not found")
		}
		return faultErr(err)
	}
	return nil
}

// UserOrders returns a customer's order history after checking their
// credentials, newest first.
func (e *Engine) UserOrders(ctx context.Context, email, password string) ([]Order, error) {
	u, err := e.Users.FindByEmail(ctx, email)
	if errors.Is(err, users.ErrNotFound) || (err == nil && !e.Hasher.Verify(password, u.PasswordHash)) {
		return nil, unauthorizedErr("Invalid email or password")
	}
	if err != nil {
		return nil, faultErr(err)
	}
	list, err := e.Orders.ListByEmail(ctx, email)
	if err != nil {
		return nil, faultErr(err)
	}
	return list, nil
}
