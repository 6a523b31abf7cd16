package locker

import (
	"sync"
	"testing"
)

func TestLockSerializesSameProduct(t *testing.T) {
	l := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock(1)
			counter++
			l.Unlock(1)
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("expected 50 serialized increments, got %d", counter)
	}
}

func TestDifferentProductsDoNotBlockEachOther(t *testing.T) {
	l := New()
	l.Lock(1)
	defer l.Unlock(1)

	done := make(chan struct{})
	go func() {
		l.Lock(2)
		l.Unlock(2)
		close(done)
	}()
	<-done
}

func TestForget(t *testing.T) {
	l := New()
	l.Lock(1)
	l.Unlock(1)
	l.Forget(1)

	if _, ok := l.locks[1]; ok {
		t.Error("expected lock entry removed")
	}
}
