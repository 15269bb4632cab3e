package directory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type promoted struct {
	mu     sync.Mutex
	values []string
}

func (p *promoted) add(v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = append(p.values, v)
}

func (p *promoted) get() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.values...)
}

func TestDebouncerCoalescesRapidInput(t *testing.T) {
	var got promoted
	d := NewDebouncer(20*time.Millisecond, got.add)
	defer d.Stop()

	d.Stage("j")
	d.Stage("ja")
	d.Stage("jaz")
	d.Stage("jazz")

	assert.Eventually(t, func() bool {
		return len(got.get()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"jazz"}, got.get())
}

func TestDebouncerFlushPromotesImmediately(t *testing.T) {
	var got promoted
	d := NewDebouncer(time.Hour, got.add)
	defer d.Stop()

	d.Stage("opera")
	d.Flush()
	assert.Equal(t, []string{"opera"}, got.get())

	// nothing staged: flush is a no-op
	d.Flush()
	assert.Equal(t, []string{"opera"}, got.get())
}

func TestDebouncerCancelDropsStagedValue(t *testing.T) {
	var got promoted
	d := NewDebouncer(10*time.Millisecond, got.add)
	defer d.Stop()

	d.Stage("ballet")
	d.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, got.get())
}

func TestDebouncerStopRefusesFurtherStaging(t *testing.T) {
	var got promoted
	d := NewDebouncer(10*time.Millisecond, got.add)

	d.Stage("before")
	d.Stop()
	d.Stage("after")

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, got.get())
}
