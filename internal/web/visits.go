package web

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yukesshwaran21/My-Portfolio/internal/console"
	"github.com/yukesshwaran21/My-Portfolio/internal/download"
)

const visitCookie = "portfolio_visit"

// visit is the view state of one browser session: the console transcript and the
// resume download status. Each slice is mutated only by its own handlers.
type visit struct {
	id      string
	console *console.Session
	flow    *download.Flow

	mu       sync.Mutex
	lastSeen time.Time
	subs     map[chan download.Status]struct{}
}

func (v *visit) touch() {
	v.mu.Lock()
	v.lastSeen = time.Now()
	v.mu.Unlock()
}

// subscribe returns a channel receiving download status changes until cancel is called.
func (v *visit) subscribe() (<-chan download.Status, func()) {
	ch := make(chan download.Status, 4)
	v.mu.Lock()
	v.subs[ch] = struct{}{}
	v.mu.Unlock()

	return ch, func() {
		v.mu.Lock()
		delete(v.subs, ch)
		v.mu.Unlock()
	}
}

func (v *visit) publish(st download.Status) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for ch := range v.subs {
		select {
		case ch <- st:
		default:
		}
	}
}

type visits struct {
	mu       sync.Mutex
	byID     map[string]*visit
	ttl      time.Duration
	flowOpts download.Options
	table    *console.Table
}

func newVisits(ttl time.Duration, flowOpts download.Options, table *console.Table) *visits {
	return &visits{
		byID:     make(map[string]*visit),
		ttl:      ttl,
		flowOpts: flowOpts,
		table:    table,
	}
}

// existing returns the caller's visit, or nil when the request carries none.
// Read-only routes use it so page loads and crawlers allocate nothing.
func (vs *visits) existing(c *gin.Context) *visit {
	id, err := c.Cookie(visitCookie)
	if err != nil {
		return nil
	}
	vs.mu.Lock()
	v := vs.byID[id]
	vs.mu.Unlock()
	if v != nil {
		v.touch()
	}
	return v
}

// forRequest returns the caller's visit, creating one (and its cookie) when needed.
// Only console and download actions call it.
func (vs *visits) forRequest(c *gin.Context) *visit {
	if v := vs.existing(c); v != nil {
		return v
	}

	v := vs.create()
	c.SetCookie(visitCookie, v.id, int(vs.ttl.Seconds()), "/", "", false, true)
	return v
}

func (vs *visits) create() *visit {
	v := &visit{
		id:       uuid.NewString(),
		console:  console.NewSession(vs.table),
		lastSeen: time.Now(),
		subs:     make(map[chan download.Status]struct{}),
	}
	opts := vs.flowOpts
	opts.OnChange = v.publish
	v.flow = download.NewFlow(opts)

	vs.mu.Lock()
	vs.byID[v.id] = v
	vs.mu.Unlock()
	return v
}

func (vs *visits) len() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.byID)
}

// expire drops visits idle for longer than the ttl.
func (vs *visits) expire(now time.Time) int {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	n := 0
	for id, v := range vs.byID {
		v.mu.Lock()
		idle := now.Sub(v.lastSeen)
		v.mu.Unlock()
		if idle > vs.ttl {
			v.flow.Stop()
			delete(vs.byID, id)
			n++
		}
	}
	return n
}

func (vs *visits) janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			vs.expire(now)
		}
	}
}

func (vs *visits) closeAll() {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	for id, v := range vs.byID {
		v.flow.Stop()
		delete(vs.byID, id)
	}
}
