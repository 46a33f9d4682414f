package images

import "sync"

// RetryPolicy tracks broken-image reports per slot key. A slot that
// exceeds MaxAttempts degrades permanently to the blank box instead of
// retrying a dead URL forever.
type RetryPolicy struct {
	MaxAttempts int

	mu       sync.Mutex
	attempts map[string]int
}

// NewRetryPolicy creates a policy with the given attempt cap.
func NewRetryPolicy(maxAttempts int) *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: maxAttempts,
		attempts:    make(map[string]int),
	}
}

// Record notes one failed load for the key and reports whether another
// retry is still allowed.
func (p *RetryPolicy) Record(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts[key]++
	return p.attempts[key] <= p.MaxAttempts
}

// Exhausted reports whether the key has used up its retries.
func (p *RetryPolicy) Exhausted(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts[key] > p.MaxAttempts
}

// Reset clears all counters, used when a worksheet is freshly loaded.
func (p *RetryPolicy) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts = make(map[string]int)
}
