package audit

import (
	"errors"
	"sync"
	"time"

	"github.com/Popolzen/quranverse/internal/logger"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
)

// Action тип действия аудита
type Action string

const (
	ActionSubmit Action = "submit"
	ActionShare  Action = "share"
	ActionReset  Action = "reset"
)

// Event структура события аудита
type Event struct {
	Timestamp int64  `json:"ts"`
	Action    Action `json:"action"`
	SessionID string `json:"session_id,omitempty"`
	URL       string `json:"url,omitempty"`
}

// NewEvent создаёт новое событие аудита
func NewEvent(action Action, sessionID, url string) Event {
	return Event{
		Timestamp: time.Now().Unix(),
		Action:    action,
		SessionID: sessionID,
		URL:       url,
	}
}

type Observer interface {
	Notify(event Event)
	Close() error
}

// queueSize ёмкость очереди событий до того, как Publish начнёт ждать
const queueSize = 256

// delivery элемент очереди: событие со снимком подписчиков или метка Flush
type delivery struct {
	event       Event
	subscribers []Observer
	flushed     chan struct{}
}

// Publisher рассылает события наблюдателям в фоне, не задерживая обработку запроса.
// События доставляются по одному в порядке публикации.
type Publisher struct {
	mu          sync.Mutex
	subscribers []Observer
	queue       chan delivery
	worker      conc.WaitGroup
	closed      bool
}

func NewPublisher() *Publisher {
	p := &Publisher{queue: make(chan delivery, queueSize)}
	p.worker.Go(p.run)
	return p
}

func (p *Publisher) Subscribe(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers = append(p.subscribers, o)
}

// Publish ставит событие в очередь. После Close события отбрасываются.
func (p *Publisher) Publish(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || len(p.subscribers) == 0 {
		return
	}

	subscribers := make([]Observer, len(p.subscribers))
	copy(subscribers, p.subscribers)

	p.queue <- delivery{event: event, subscribers: subscribers}
}

// run единственный обработчик очереди
func (p *Publisher) run() {
	for d := range p.queue {
		if d.flushed != nil {
			close(d.flushed)
			continue
		}
		deliver(d.event, d.subscribers)
	}
}

// deliver отдаёт одно событие всем наблюдателям параллельно и ждёт их
func deliver(event Event, subscribers []Observer) {
	fanout := pool.New().WithMaxGoroutines(len(subscribers))
	for _, s := range subscribers {
		fanout.Go(func() {
			s.Notify(event)
		})
	}

	var pc panics.Catcher
	pc.Try(fanout.Wait)
	if r := pc.Recovered(); r != nil {
		logger.Log().Errorw("audit: наблюдатель упал", "action", event.Action, "panic", r.String())
	}
}

// Flush ждёт доставки уже опубликованных событий
func (p *Publisher) Flush() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	done := make(chan struct{})
	p.queue <- delivery{flushed: done}
	p.mu.Unlock()

	<-done
}

// Close дожидается доставки и закрывает всех наблюдателей. Повторный вызов ничего не делает.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.worker.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	for _, obs := range p.subscribers {
		if err := obs.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
