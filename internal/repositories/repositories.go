package repositories

import "sync"

// keyedMutex hands out one mutex per key so unrelated keys never contend.
//
// Mutexes are created on first use and kept for the process lifetime; the
// keyspace is usernames, which is small enough that entries are never evicted.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for a key, creating it if absent.
func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	return lock
}
