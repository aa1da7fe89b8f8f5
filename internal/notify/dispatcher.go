package notify

import (
	"context"
	"log"
	"time"

	"github.com/akshayam/wellness-store.git/internal/mailer"
	"github.com/akshayam/wellness-store.git/internal/orders"
)

// FailureRecorder writes the email-failure flag back onto the order.
type FailureRecorder interface {
	MarkEmailFailed(ctx context.Context, orderID string, at time.Time) error
}

// Dispatcher sends the order notification from a detached goroutine.
// Nothing it does can reach the request that created the order: panics
// are recovered, delivery errors are retried and finally degraded to a
// flag on the order document.
type Dispatcher struct {
	Mail       mailer.Mailer
	Orders     FailureRecorder
	AdminEmail string

	MaxAttempts int           // defaults to 3
	BaseDelay   time.Duration // defaults to 2s, doubling per attempt
	Sleep       func(time.Duration)
	Now         func() time.Time
}

func (d *Dispatcher) Dispatch(o orders.Order) {
	go d.Run(o)
}

// Run is Dispatch's body, exported for synchronous use in tests and
// worker loops.
func (d *Dispatcher) Run(o orders.Order) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notification dispatcher: recovered: %v", r)
		}
	}()
	d.deliver(context.Background(), o)
}

func (d *Dispatcher) deliver(ctx context.Context, o orders.Order) {
	attempts := d.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	delay := d.BaseDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	sleep := d.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}

	subject, text, html := FormatOrderEmail(o)

	for attempt := 1; attempt <= attempts; attempt++ {
		if d.trySend(subject, text, html) {
			log.Printf("order %s: notification sent (attempt %d)", o.ID, attempt)
			return
		}
		log.Printf("order %s: notification attempt %d/%d failed", o.ID, attempt, attempts)
		sleep(delay)
		delay *= 2
	}

	// exhausted: record the failure on the order, swallowing any error
	if err := d.Orders.MarkEmailFailed(ctx, o.ID, now().UTC()); err != nil {
		log.Printf("order %s: recording email failure: %v", o.ID, err)
	}
}

// trySend contains one delivery attempt behind its own recover so a
// panicking transport counts as a failed attempt and gets retried.
func (d *Dispatcher) trySend(subject, text, html string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notification dispatcher: send panicked: %v", r)
			ok = false
		}
	}()
	sent, err := d.Mail.Send([]string{d.AdminEmail}, subject, text, html)
	if err != nil {
		log.Printf("notification dispatcher: send: %v", err)
		return false
	}
	return sent
}
