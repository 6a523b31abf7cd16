// Package locker serializes consumption writes per product. The admission
// check is a check-then-act sequence (read consumptions, validate, persist);
// two concurrent requests against the same product could otherwise both read
// the same remaining capacity and together over-commit it.
package locker

import "sync"

// ProductLocker hands out one mutex per product ID.
type ProductLocker struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func New() *ProductLocker {
	return &ProductLocker{locks: make(map[int]*sync.Mutex)}
}

// Lock acquires the mutex for the given product, creating it on first use.
func (l *ProductLocker) Lock(productID int) {
	l.mu.Lock()
	m, ok := l.locks[productID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[productID] = m
	}
	l.mu.Unlock()
	m.Lock()
}

// Unlock releases the mutex for the given product.
func (l *ProductLocker) Unlock(productID int) {
	l.mu.Lock()
	m, ok := l.locks[productID]
	l.mu.Unlock()
	if ok {
		m.Unlock()
	}
}

// Forget drops the lock entry for a product that no longer exists.
func (l *ProductLocker) Forget(productID int) {
	l.mu.Lock()
	delete(l.locks, productID)
	l.mu.Unlock()
}
