package usecase_test

import (
	"context"
	"sync"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/domain/entity"
	"github.com/bnema/sitealert/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// fakePage is a scripted port.PageAdapter.
type fakePage struct {
	mu            sync.Mutex
	unassigned    bool
	location      string
	hasLocation   bool
	locationCalls int
	nextID        port.SubscriptionID
	subs          map[port.SubscriptionID]port.PageChangeCallback
}

func newFakePage() *fakePage {
	return &fakePage{subs: make(map[port.SubscriptionID]port.PageChangeCallback)}
}

func (p *fakePage) setUnassigned(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unassigned = v
}

func (p *fakePage) setLocation(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.location = text
	p.hasLocation = true
}

func (p *fakePage) clearLocation() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.location = ""
	p.hasLocation = false
}

func (p *fakePage) LocationCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locationCalls
}

func (p *fakePage) subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

func (p *fakePage) emit(change entity.PageChange) {
	p.mu.Lock()
	callbacks := make([]port.PageChangeCallback, 0, len(p.subs))
	for _, cb := range p.subs {
		callbacks = append(callbacks, cb)
	}
	p.mu.Unlock()

	for _, cb := range callbacks {
		cb(change)
	}
}

func (p *fakePage) IsUnassigned(context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unassigned
}

func (p *fakePage) LocationText(context.Context) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locationCalls++
	return p.location, p.hasLocation
}

func (p *fakePage) SubscribeToChanges(callback port.PageChangeCallback) port.SubscriptionID {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	p.subs[p.nextID] = callback
	return p.nextID
}

func (p *fakePage) Unsubscribe(id port.SubscriptionID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.subs, id)
}
