package chat

import "sync"

// ConversationLocks serializes writes per conversation so concurrent sends
// from multiple devices cannot interleave a conversation's message order.
// Locks are process-local and never held across the generation call.
// Entries are kept for the process lifetime, deleted conversations
// included: dropping a mutex that an in-flight turn still holds would let
// the next Lock mint a fresh one and break the serialization.
type ConversationLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewConversationLocks() *ConversationLocks {
	return &ConversationLocks{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for one conversation, creating it on first use.
func (c *ConversationLocks) Lock(convID uint) {
	c.mu.Lock()
	lock, ok := c.locks[convID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[convID] = lock
	}
	c.mu.Unlock()

	lock.Lock()
}

func (c *ConversationLocks) Unlock(convID uint) {
	c.mu.Lock()
	lock := c.locks[convID]
	c.mu.Unlock()

	if lock != nil {
		lock.Unlock()
	}
}
