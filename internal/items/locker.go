package items

import "sync"

// keyedLocker 按键加锁，不同键互不阻塞；无人持有的键会被回收
type keyedLocker[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocker[K comparable]() *keyedLocker[K] {
	return &keyedLocker[K]{locks: make(map[K]*lockEntry)}
}

// Lock 获取 key 对应的锁，返回解锁函数
func (l *keyedLocker[K]) Lock(key K) func() {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &lockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// size 当前持有或等待中的键数量
func (l *keyedLocker[K]) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
