package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/tailorhub/internal/registration"
)

const (
	defaultFlowTTL = 30 * time.Minute

	navigationExit    = "exit"
	navigationForward = "forward"
)

type navigationDirective struct {
	Action string            `json:"action"`
	Route  string            `json:"route,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

// flowNavigator records the stepper's exit requests so the handler can hand
// them to the client with the response.
type flowNavigator struct {
	mu      sync.Mutex
	pending *navigationDirective
}

func (navigator *flowNavigator) GoBack() {
	navigator.mu.Lock()
	defer navigator.mu.Unlock()
	navigator.pending = &navigationDirective{Action: navigationExit}
}

func (navigator *flowNavigator) GoForward(route string, params map[string]string) {
	navigator.mu.Lock()
	defer navigator.mu.Unlock()
	navigator.pending = &navigationDirective{Action: navigationForward, Route: route, Params: params}
}

func (navigator *flowNavigator) take() *navigationDirective {
	navigator.mu.Lock()
	defer navigator.mu.Unlock()
	directive := navigator.pending
	navigator.pending = nil
	return directive
}

type registrationFlow struct {
	id        string
	stepper   *registration.Stepper
	navigator *flowNavigator
	touchedAt time.Time
}

// flowStore keeps live registration flows in memory. Flows idle for longer
// than ttl are abandoned by sweep.
type flowStore struct {
	mu    sync.Mutex
	flows map[string]*registrationFlow
	ttl   time.Duration
	now   func() time.Time
}

func newFlowStore(ttl time.Duration) *flowStore {
	if ttl <= 0 {
		ttl = defaultFlowTTL
	}
	return &flowStore{
		flows: make(map[string]*registrationFlow),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (store *flowStore) add(stepper *registration.Stepper, navigator *flowNavigator) *registrationFlow {
	store.mu.Lock()
	defer store.mu.Unlock()

	flow := &registrationFlow{
		id:        uuid.NewString(),
		stepper:   stepper,
		navigator: navigator,
		touchedAt: store.now(),
	}
	store.flows[flow.id] = flow
	return flow
}

func (store *flowStore) get(id string) (*registrationFlow, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	flow, ok := store.flows[id]
	if ok {
		flow.touchedAt = store.now()
	}
	return flow, ok
}

// remove drops the flow and abandons its stepper.
func (store *flowStore) remove(id string) bool {
	store.mu.Lock()
	flow, ok := store.flows[id]
	delete(store.flows, id)
	store.mu.Unlock()

	if ok {
		flow.stepper.Abandon()
	}
	return ok
}

// discard drops a finished flow without touching its stepper.
func (store *flowStore) discard(id string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.flows, id)
}

func (store *flowStore) len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.flows)
}

func (store *flowStore) sweep(now time.Time) []string {
	threshold := now.Add(-store.ttl)

	store.mu.Lock()
	expired := make([]*registrationFlow, 0)
	for id, flow := range store.flows {
		if flow.touchedAt.Before(threshold) {
			expired = append(expired, flow)
			delete(store.flows, id)
		}
	}
	store.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, flow := range expired {
		flow.stepper.Abandon()
		ids = append(ids, flow.id)
	}
	return ids
}

func (store *flowStore) run(ctx context.Context, interval time.Duration, onExpired func(id string)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, id := range store.sweep(store.now()) {
				if onExpired != nil {
					onExpired(id)
				}
			}
		}
	}
}
