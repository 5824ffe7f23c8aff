package events

import (
	"context"
	"fmt"
	"sync"
)

type FakePublisher struct {
	Published   []Event
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (p *FakePublisher) Publish(ctx context.Context, event Event) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish event %v", event)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, event)
	return nil
}

func (p *FakePublisher) PublishedCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.Published)
}

func (p *FakePublisher) LastPublished() Event {
	p.lock.Lock()
	defer p.lock.Unlock()
	if len(p.Published) == 0 {
		panic("no events have been published")
	}
	return p.Published[len(p.Published)-1]
}
