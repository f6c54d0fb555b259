package session

import (
	"context"
	"sync"
	"time"
)

// Watcher is the handle of a running background revalidation loop.
type Watcher struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Stop cancels the revalidation loop and waits for it to exit. After Stop
// returns, no further expiry callback will fire. Stopping twice is safe.
func (w *Watcher) Stop() {
	w.once.Do(func() { close(w.stop) })
	<-w.done
}

// Watch starts periodic revalidation of the persisted token. Each tick runs
// only the validity check, not the full authorization table; when the token
// is absent or no longer valid the markers are cleared and onExpired fires
// once for that tick. The caller must Stop the returned Watcher when the
// guarded screen goes away.
func (g *Guard) Watch(interval time.Duration, onExpired func()) *Watcher {
	w := &Watcher{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(w.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				g.revalidate(onExpired)
			case <-w.stop:
				return
			}
		}
	}()

	return w
}

func (g *Guard) revalidate(onExpired func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	sess, err := g.store.Load(ctx)
	if err != nil {
		g.log.Warn(ctx, "revalidation: session load failed", "error", err)
		return
	}

	if g.validator.IsValid(sess.Token) {
		return
	}

	g.clear(ctx)
	if onExpired != nil {
		onExpired()
	}
}
