// Package msgqueue implements a time-ordered queue of deferred messages
// addressed to UI targets. Any goroutine may post; only the UI goroutine
// dispatches.
package msgqueue

import (
	"sort"
	"sync"
	"time"
)

// AnyType matches every message type in Remove and Contains.
const AnyType = -1

// Target receives dispatched messages.
type Target interface {
	ProcessMessage(m *Message)
}

// Message is a deferred notification. A nil Target makes it a broadcast.
type Message struct {
	Target Target
	Type   int
	Data1  any
	Data2  any

	// Time is the delivery time, set when the message is queued.
	Time time.Time
}

func (m *Message) matches(target Target, typ int) bool {
	return m.Target == target && (typ == AnyType || m.Type == typ)
}

// Queue holds pending messages ordered by delivery time.
type Queue struct {
	mu       sync.Mutex
	messages []*Message
	targets  map[Target]struct{}
	order    []Target
	now      func() time.Time
	wake     chan struct{}
}

// Option configures a Queue.
type Option func(*Queue)

// WithClock replaces time.Now as the queue's time source.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// New returns an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		targets: make(map[Target]struct{}),
		now:     time.Now,
		wake:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Register makes t eligible for delivery. Broadcasts reach targets in
// registration order.
func (q *Queue) Register(t Target) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.targets[t]; ok {
		return
	}
	q.targets[t] = struct{}{}
	q.order = append(q.order, t)
}

// Unregister removes t and every message pending for it.
func (q *Queue) Unregister(t Target) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.targets[t]; !ok {
		return
	}
	delete(q.targets, t)
	for i, o := range q.order {
		if o == t {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	q.removeLocked(t, AnyType)
}

// Registered reports whether t currently accepts messages.
func (q *Queue) Registered(t Target) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.targets[t]
	return ok
}

// Post queues m for delivery after delay. Messages with equal delivery
// times keep their posting order.
func (q *Queue) Post(m Message, delay time.Duration) {
	q.mu.Lock()
	q.insertLocked(&m, delay)
	q.mu.Unlock()
	q.signal()
}

// Debounce is Post after dropping any pending message with the same target
// and type, so at most one such message is ever pending.
func (q *Queue) Debounce(m Message, delay time.Duration) {
	q.mu.Lock()
	q.removeLocked(m.Target, m.Type)
	q.insertLocked(&m, delay)
	q.mu.Unlock()
	q.signal()
}

// Broadcast queues m for every target registered when it is dispatched.
func (q *Queue) Broadcast(m Message, delay time.Duration) {
	m.Target = nil
	q.Post(m, delay)
}

// Remove drops pending messages for target of type typ, or of every type
// when typ is AnyType.
func (q *Queue) Remove(target Target, typ int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removeLocked(target, typ)
}

// Contains reports whether a matching message is pending.
func (q *Queue) Contains(target Target, typ int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, m := range q.messages {
		if m.matches(target, typ) {
			return true
		}
	}
	return false
}

// Len returns the number of pending messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}

// NextDeadline returns the delivery time of the earliest pending message.
func (q *Queue) NextDeadline() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) == 0 {
		return time.Time{}, false
	}
	return q.messages[0].Time, true
}

// Now returns the queue's current time.
func (q *Queue) Now() time.Time {
	return q.now()
}

// Wake returns a channel that receives a value after every post, letting a
// waiting event loop recompute its timeout.
func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}

type delivery struct {
	target Target
	msg    *Message
}

// Dispatch delivers every message that is due, in delivery-time order, and
// returns how many handler calls were made. Messages posted by handlers are
// delivered on a later call.
func (q *Queue) Dispatch() int {
	q.mu.Lock()
	now := q.now()
	n := sort.Search(len(q.messages), func(i int) bool {
		return q.messages[i].Time.After(now)
	})
	due := q.messages[:n:n]
	q.messages = append([]*Message(nil), q.messages[n:]...)

	var batch []delivery
	for _, m := range due {
		if m.Target == nil {
			for _, t := range q.order {
				c := *m
				c.Target = t
				batch = append(batch, delivery{target: t, msg: &c})
			}
			continue
		}
		if _, ok := q.targets[m.Target]; ok {
			batch = append(batch, delivery{target: m.Target, msg: m})
		}
	}
	q.mu.Unlock()

	delivered := 0
	for _, d := range batch {
		// An earlier handler may have unregistered this target.
		if !q.Registered(d.target) {
			continue
		}
		d.target.ProcessMessage(d.msg)
		delivered++
	}
	return delivered
}

func (q *Queue) insertLocked(m *Message, delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	m.Time = q.now().Add(delay)
	// Upper bound keeps insertion stable for equal times.
	i := sort.Search(len(q.messages), func(i int) bool {
		return q.messages[i].Time.After(m.Time)
	})
	q.messages = append(q.messages, nil)
	copy(q.messages[i+1:], q.messages[i:])
	q.messages[i] = m
}

func (q *Queue) removeLocked(target Target, typ int) {
	kept := q.messages[:0]
	for _, m := range q.messages {
		if !m.matches(target, typ) {
			kept = append(kept, m)
		}
	}
	for i := len(kept); i < len(q.messages); i++ {
		q.messages[i] = nil
	}
	q.messages = kept
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}
