package parallel

import "errors"
import "sync/atomic"
import "testing"

func TestForEachVisitsAll(t *testing.T) {
	var seen = make([]int32, 100)
	var running, peak int32
	ForEach(len(seen), 4, func(i int) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		atomic.AddInt32(&seen[i], 1)
		atomic.AddInt32(&running, -1)
	})
	for i, v := range seen {
		if v != 1 {
			t.Errorf("index %d visited %d times", i, v)
		}
	}
	if peak > 4 {
		t.Errorf("%d goroutines ran at once, limit 4", peak)
	}
	ForEach(0, 4, func(int) { t.Error("body called for empty range") })
}

func TestFirstError(t *testing.T) {
	err := FirstError(10, 3, func(i int) error {
		if i == 7 || i == 4 {
			return errors.New(string(rune('0' + i)))
		}
		return nil
	})
	if err == nil || err.Error() != "4" {
		t.Errorf("FirstError = %v, want 4", err)
	}
	if err := FirstError(5, 0, func(int) error { return nil }); err != nil {
		t.Errorf("FirstError = %v", err)
	}
}
