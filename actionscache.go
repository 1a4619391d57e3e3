package entropy

import "sync"

// ActionsCache collects committed ChangeSets from any number of
// goroutines ahead of a Universe.Refresh call. CommitChangeSet appends
// the caller's ChangeSet under a single mutex; the commit order
// observed by Refresh is exactly the order in which Lock was acquired
// here. Which goroutine wins a contended Lock is up to the Go runtime.
type ActionsCache struct {
	mu      sync.Mutex
	pending []*ChangeSet
}

// NewActionsCache returns an empty cache.
func NewActionsCache() *ActionsCache {
	return &ActionsCache{}
}

// CommitChangeSet appends cs to the pending list. The caller must
// replace its own reference with a fresh ChangeSet afterward; this
// cache takes ownership of cs and its contents must not be mutated
// again by the committing goroutine.
func (ac *ActionsCache) CommitChangeSet(cs *ChangeSet) {
	if cs == nil || cs.empty() {
		return
	}
	ac.mu.Lock()
	ac.pending = append(ac.pending, cs)
	ac.mu.Unlock()
}

// drain detaches and returns every committed ChangeSet in commit
// order, resetting the cache for the next cycle. Only Universe.Refresh
// calls this, under its single-writer guarantee.
func (ac *ActionsCache) drain() []*ChangeSet {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	drained := ac.pending
	ac.pending = nil
	return drained
}

// Reset drops every committed ChangeSet that no Refresh has applied
// yet, without applying it.
func (ac *ActionsCache) Reset() {
	ac.mu.Lock()
	ac.pending = nil
	ac.mu.Unlock()
}
