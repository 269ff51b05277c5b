package queue

import (
	"context"
	"errors"
	"sync"
)

var ErrQueueFull = errors.New("the queue is currently full")

type (
	// Item is one render request. Run is called from the queue goroutine.
	Item struct {
		ID    string
		Name  string
		Owner string
		Run   func(ctx context.Context)
	}

	Queue struct {
		elements        []Item
		mutex           sync.Mutex
		maxLength       int
		processing      bool
		processingMutex sync.Mutex
		processingItem  *Item
	}
)
