package queue

import (
	"context"
	"fmt"
	"time"

	"presetbird/logger"
)

const pollInterval = 100 * time.Millisecond

// New creates a queue holding at most maxLength waiting items.
func New(maxLength int) *Queue {
	if maxLength <= 0 {
		maxLength = 10
	}
	return &Queue{maxLength: maxLength}
}

// Enqueue adds an element to the end of the queue and returns a message
// telling the owner how many items are ahead of them.
func (q *Queue) Enqueue(element Item) (string, error) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if len(q.elements) >= q.maxLength {
		return "", fmt.Errorf("%w (limit is %d), please try again in a few minutes", ErrQueueFull, q.maxLength)
	}

	q.elements = append(q.elements, element)

	itemsAhead := len(q.elements) - 1
	if q.isProcessing() {
		itemsAhead++
	}

	switch itemsAhead {
	case 0:
		return "", nil
	case 1:
		return "There is 1 item in the queue ahead of you. Your request will be processed shortly.", nil
	default:
		return fmt.Sprintf("There are %d items in the queue ahead of you. Your request will be processed shortly.", itemsAhead), nil
	}
}

// Dequeue removes and returns the first element of the queue
func (q *Queue) Dequeue() *Item {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if len(q.elements) == 0 {
		return nil
	}
	element := q.elements[0]
	q.elements = q.elements[1:]
	return &element
}

func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// Len returns the current number of waiting items
func (q *Queue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.elements)
}

// Names returns the names of the waiting items in order
func (q *Queue) Names() []string {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	names := make([]string, 0, len(q.elements))
	for _, item := range q.elements {
		names = append(names, item.Name)
	}
	return names
}

// Clear removes all waiting items
func (q *Queue) Clear() {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.elements = nil
	logger.Info("Queue cleared")
}

// IsCurrentlyProcessing returns whether an item is actively being processed
func (q *Queue) IsCurrentlyProcessing() bool {
	return q.isProcessing()
}

// ProcessingName returns the name of the running item, or "" when idle
func (q *Queue) ProcessingName() string {
	q.processingMutex.Lock()
	defer q.processingMutex.Unlock()
	if q.processingItem != nil {
		return q.processingItem.Name
	}
	return ""
}

func (q *Queue) setProcessing(item *Item) {
	q.processingMutex.Lock()
	defer q.processingMutex.Unlock()
	q.processing = item != nil
	q.processingItem = item
}

func (q *Queue) isProcessing() bool {
	q.processingMutex.Lock()
	defer q.processingMutex.Unlock()
	return q.processing
}

// ProcessQueue runs items one at a time, in order, until ctx is done.
func (q *Queue) ProcessQueue(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		for !q.IsEmpty() {
			if ctx.Err() != nil {
				return
			}

			element := q.Dequeue()
			if element == nil {
				break
			}
			q.setProcessing(element)
			logger.Debug("Queue: Executing item", "id", element.ID, "name", element.Name, "queue_length", q.Len())

			if element.Run != nil {
				element.Run(ctx)
			}

			q.setProcessing(nil)
			logger.Debug("Queue: Item completed", "id", element.ID, "queue_length", q.Len())
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
