//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-box/bus"
	"chat-box/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink receives the events produced by feeds.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Viewport is the scrollable area a chat box appends to.
// Heights are host units (terminal lines for the tui host).
type Viewport interface {
	ScrollTop() int
	ScrollHeight() int
	ClientHeight() int
	SetContent(content string)
	ScrollTo(top int)
	View() string
}

// MessageInput is the draft editor collaborating with a chat box.
type MessageInput interface {
	Bus() *bus.Bus
	Clear()
	View() string
}

// TextFilter masks forbidden words in inbound text.
type TextFilter interface {
	Censor(text string) (string, []string)
}

// Publisher sends the authed user's messages out of the process.
type Publisher interface {
	Publish(ctx context.Context, e event.MessagePosted) error
}
