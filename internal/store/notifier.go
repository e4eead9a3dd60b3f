package store

import "sync"

// Notifier fans collection change pings out to live subscribers. It is the
// in-process half of live queries: every successful write notifies the
// changed collection and each subscriber re-runs its query.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[string]map[int]chan struct{}
	next      int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[string]map[int]chan struct{})}
}

// Notify wakes every subscriber of the collection. Sends never block; a
// subscriber that is mid-query coalesces the pending ping.
func (n *Notifier) Notify(collection string) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, ch := range n.listeners[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Listen registers for change pings on the collection. The release function
// must be called when the subscriber goes away.
func (n *Notifier) Listen(collection string) (chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	if n.listeners[collection] == nil {
		n.listeners[collection] = make(map[int]chan struct{})
	}
	ch := make(chan struct{}, 1)
	n.listeners[collection][id] = ch

	release := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners[collection], id)
	}
	return ch, release
}
