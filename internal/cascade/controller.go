// Package cascade manages a two-level dependent selection (for example
// city -> district) with fetch-on-change semantics. Changing the parent
// always clears the child and its option list before a new fetch starts, so
// a slow earlier fetch can never repopulate stale options under a different
// parent. Every form with dependent dropdowns drives one Controller per
// parent/child pair instead of hand-rolling this per screen.
package cascade

import (
	"context"
	"sync"

	"github.com/eventora/backoffice/internal/common"
	"github.com/eventora/backoffice/internal/logging"
)

// Option is one selectable child entry.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Result is the response envelope the controller relies on. Transport and
// encoding are the fetcher's business.
type Result struct {
	Success bool     `json:"success"`
	Items   []Option `json:"items"`
	Message string   `json:"message"`
}

// Fetcher loads the child options of a parent.
type Fetcher interface {
	FetchChildren(ctx context.Context, parentID int64) (Result, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, parentID int64) (Result, error)

func (fn FetcherFunc) FetchChildren(ctx context.Context, parentID int64) (Result, error) {
	return fn(ctx, parentID)
}

// Snapshot is the renderer contract: an immutable copy of the controller
// state. The consumer must keep the child input disabled while Loading is
// true.
type Snapshot struct {
	ParentID   *int64
	ChildID    *int64
	Options    []Option
	Loading    bool
	FetchError string
	StaleRef   bool
}

// Controller holds the dependent-selection state for one form.
//
// Fetch results are applied in last-request-wins order: every state change
// that can start a fetch bumps an internal sequence number, and a finishing
// fetch mutates state only if its sequence is still current. Results of
// superseded fetches are discarded silently.
type Controller struct {
	fetcher Fetcher
	log     logging.Logger

	mu       sync.Mutex
	parentID *int64
	childID  *int64
	options  []Option
	loading  bool
	fetchErr string
	staleRef bool
	seq      uint64

	onChange func(Snapshot)
}

func NewController(fetcher Fetcher, log logging.Logger) *Controller {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &Controller{fetcher: fetcher, log: log}
}

// OnChange registers a callback invoked after every state transition with a
// fresh snapshot. Must be set before the controller is driven.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Loading:    c.loading,
		FetchError: c.fetchErr,
		StaleRef:   c.staleRef,
	}
	if c.parentID != nil {
		id := *c.parentID
		snap.ParentID = &id
	}
	if c.childID != nil {
		id := *c.childID
		snap.ChildID = &id
	}
	if c.options != nil {
		snap.Options = append([]Option(nil), c.options...)
	}
	return snap
}

// SetParent selects a new parent. The child selection and option list are
// cleared before any fetch is issued; when v parses to a present id, the
// child options are fetched asynchronously. An absent id just leaves the
// child list empty.
func (c *Controller) SetParent(ctx context.Context, v any) {
	id, ok := ParseID(v)

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.childID = nil
	c.options = nil
	c.fetchErr = ""
	c.staleRef = false
	if !ok {
		c.parentID = nil
		c.loading = false
		c.mu.Unlock()
		c.notify()
		return
	}
	c.parentID = &id
	c.loading = true
	c.mu.Unlock()
	c.notify()

	go c.fetch(ctx, seq, id, nil)
}

// SetChild selects a child. The value is accepted unconditionally: the
// renderer only offers currently available options, so no re-validation
// against the option list happens here.
func (c *Controller) SetChild(v any) {
	id, ok := ParseID(v)

	c.mu.Lock()
	if ok {
		c.childID = &id
	} else {
		c.childID = nil
	}
	c.staleRef = false
	c.mu.Unlock()
	c.notify()
}

// Prepopulate seeds the controller from an existing record being edited.
// The parent is set directly (there is no previous selection to invalidate),
// its children are fetched, and the child selection is applied only if it is
// still among the fetched options; otherwise the child stays unset and the
// snapshot reports a stale reference.
func (c *Controller) Prepopulate(ctx context.Context, parent, child any) {
	pid, pok := ParseID(parent)
	cid, cok := ParseID(child)

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.childID = nil
	c.options = nil
	c.fetchErr = ""
	c.staleRef = false
	if !pok {
		c.parentID = nil
		c.loading = false
		c.mu.Unlock()
		c.notify()
		return
	}
	c.parentID = &pid
	c.loading = true
	c.mu.Unlock()
	c.notify()

	var applyChild *int64
	if cok {
		applyChild = &cid
	}
	go c.fetch(ctx, seq, pid, applyChild)
}

func (c *Controller) fetch(ctx context.Context, seq uint64, parentID int64, applyChild *int64) {
	res, err := c.fetcher.FetchChildren(ctx, parentID)

	c.mu.Lock()
	if seq != c.seq {
		// A newer selection owns the state now.
		c.mu.Unlock()
		return
	}

	c.loading = false
	switch {
	case err != nil:
		c.options = nil
		c.fetchErr = err.Error()
		c.log.Warn(ctx, "child options fetch failed", "parentID", parentID, "error", err)
	case !res.Success:
		c.options = nil
		c.fetchErr = res.Message
		if c.fetchErr == "" {
			c.fetchErr = common.ErrFetchFailed.Error()
		}
		c.log.Warn(ctx, "child options fetch rejected", "parentID", parentID, "message", res.Message)
	default:
		c.options = res.Items
		if applyChild != nil {
			if containsOption(res.Items, *applyChild) {
				id := *applyChild
				c.childID = &id
			} else {
				c.staleRef = true
				c.log.Warn(ctx, "prepopulated child no longer among options",
					"parentID", parentID, "childID", *applyChild)
			}
		}
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

func containsOption(options []Option, id int64) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}
