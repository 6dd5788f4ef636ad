package pubsub

import (
	"context"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Event is a step of a task execution
type Event struct {
	Action  string    `json:"action"`
	Id      uuid.UUID `json:"id"`
	Node    string    `json:"node"`
	Element string    `json:"element"`
	Error   string    `json:"error,omitempty"`
}

type subscriber struct {
	ctx    context.Context
	events chan Event
}

type PubSub struct {
	lock        *sync.Mutex
	cpt         uint64
	subscribers map[uint64]subscriber
	wg          *sync.WaitGroup
}

func NewPubSub() *PubSub {
	return &PubSub{
		lock:        &sync.Mutex{},
		cpt:         0,
		subscribers: make(map[uint64]subscriber),
		wg:          &sync.WaitGroup{},
	}
}

// Subscribe to events until ctx is done, then the chan is closed
func (p *PubSub) Subscribe(ctx context.Context) <-chan Event {
	p.lock.Lock()
	id := p.cpt
	p.cpt++
	s := subscriber{
		ctx:    ctx,
		events: make(chan Event),
	}
	p.subscribers[id] = s
	p.wg.Add(1)
	l := log.WithField("id", id).WithField("subscribers", len(p.subscribers))
	p.lock.Unlock()
	go func(id uint64) {
		<-ctx.Done() // closing the subscription
		p.lock.Lock()
		delete(p.subscribers, id)
		close(s.events)
		p.wg.Done()
		p.lock.Unlock()
		log.WithField("id", id).Debug("Closing subscription")
	}(id)
	l.Debug("Opening subscription")
	return s.events
}

// Publish an event to every subscriber, blocks until each one gets it or leaves
func (p *PubSub) Publish(evt Event) {
	p.lock.Lock()
	defer p.lock.Unlock()
	log.WithField("event", evt).WithField("subscribers", len(p.subscribers)).Debug("publish")
	for _, s := range p.subscribers {
		select {
		case s.events <- evt:
		case <-s.ctx.Done():
		}
	}
}

func (p *PubSub) Wait() {
	p.wg.Wait()
}
