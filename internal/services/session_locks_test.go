package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionLocks(t *testing.T) {
	locks := newSessionLocks()

	unlockA := locks.lock("a")
	// A different session is not blocked.
	unlockB := locks.lock("b")
	assert.Equal(t, 2, locks.held())
	unlockB()

	acquired := make(chan struct{})
	go func() {
		unlock := locks.lock("a")
		close(acquired)
		unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder entered session a while it was locked")
	case <-time.After(20 * time.Millisecond):
	}

	unlockA()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired session a")
	}

	assert.Eventually(t, func() bool { return locks.held() == 0 }, time.Second, time.Millisecond)
}

func TestSessionLocks_CountsUnderContention(t *testing.T) {
	locks := newSessionLocks()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("s")
			defer unlock()
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, locks.held())
}
