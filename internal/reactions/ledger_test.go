package reactions

import (
	"errors"
	"sync"
	"testing"

	"couchclub/internal/errs"
)

func TestDecideAdd(t *testing.T) {
	action, delta := decide(nil, 1)
	if action != ActionAdded || delta != 1 {
		t.Fatalf("expected added/+1, got %s/%d", action, delta)
	}
	action, delta = decide(nil, -1)
	if action != ActionAdded || delta != -1 {
		t.Fatalf("expected added/-1, got %s/%d", action, delta)
	}
}

func TestDecideIdenticalRetoggleIsNoop(t *testing.T) {
	existing := 1
	action, delta := decide(&existing, 1)
	if action != ActionUnchanged || delta != 0 {
		t.Fatalf("expected unchanged/0, got %s/%d", action, delta)
	}
}

func TestDecideSwitchAppliesSingleDelta(t *testing.T) {
	up := 1
	action, delta := decide(&up, -1)
	if action != ActionSwitched || delta != -2 {
		t.Fatalf("expected switched/-2, got %s/%d", action, delta)
	}
	down := -1
	action, delta = decide(&down, 1)
	if action != ActionSwitched || delta != 2 {
		t.Fatalf("expected switched/+2, got %s/%d", action, delta)
	}
}

func TestNormalizeValue(t *testing.T) {
	likeSpec := targetSpecs["post"]
	value, err := normalizeValue(likeSpec, -1)
	if err != nil || value != 1 {
		t.Fatalf("likes coerce to +1, got %d err=%v", value, err)
	}
	voteSpec := targetSpecs["comment"]
	if _, err := normalizeValue(voteSpec, 2); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for value 2, got %v", err)
	}
	if value, err := normalizeValue(voteSpec, -1); err != nil || value != -1 {
		t.Fatalf("expected -1 accepted, got %d err=%v", value, err)
	}
}

// memTarget applies decide under a lock the way the transactional ledger
// does, so the toggle properties can be checked under real goroutine
// interleavings.
type memTarget struct {
	mu      sync.Mutex
	rows    map[uint]int
	counter int
}

func newMemTarget() *memTarget {
	return &memTarget{rows: make(map[uint]int)}
}

func (m *memTarget) toggle(userID uint, value int) Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	var existing *int
	if current, ok := m.rows[userID]; ok {
		existing = &current
	}
	action, delta := decide(existing, value)
	if action != ActionUnchanged {
		m.rows[userID] = value
	}
	m.counter += delta
	return action
}

func (m *memTarget) remove(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.rows[userID]
	if !ok {
		return
	}
	delete(m.rows, userID)
	m.counter -= value
}

func TestToggleIdempotent(t *testing.T) {
	target := newMemTarget()
	target.toggle(1, 1)
	once := target.counter
	target.toggle(1, 1)
	if target.counter != once {
		t.Fatalf("double toggle changed counter: %d != %d", target.counter, once)
	}
	target.remove(1)
	if target.counter != 0 {
		t.Fatalf("toggle then remove should restore counter, got %d", target.counter)
	}
}

func TestConcurrentTogglesDistinctUsers(t *testing.T) {
	target := newMemTarget()
	const n = 64
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			target.toggle(userID, 1)
		}(uint(i + 1))
	}
	wg.Wait()
	if target.counter != n {
		t.Fatalf("expected counter %d, got %d", n, target.counter)
	}
}

func TestConcurrentTogglesSameUserCollapse(t *testing.T) {
	target := newMemTarget()
	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(value int) {
			defer wg.Done()
			target.toggle(7, value)
		}(1 - 2*(i%2))
	}
	wg.Wait()
	value, ok := target.rows[7]
	if !ok {
		t.Fatalf("expected a surviving reaction row")
	}
	if target.counter != value {
		t.Fatalf("counter %d diverged from the single row value %d", target.counter, value)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	target := newMemTarget()
	target.toggle(1, 1)
	target.remove(2)
	if target.counter != 1 {
		t.Fatalf("removing an absent reaction changed the counter: %d", target.counter)
	}
}
