package bot

import (
	"container/list"
	"sync"
)

const pendingInputsMaxEntries = 1024

// pendingInputs keeps the last captured text per chat until the user picks an
// action. The least recently used chats are dropped first.
type pendingInputs struct {
	mu         sync.Mutex
	entries    map[int64]*list.Element
	order      *list.List
	maxEntries int
}

type pendingInput struct {
	chatID int64
	text   string
}

func newPendingInputs(maxEntries int) *pendingInputs {
	return &pendingInputs{
		entries:    make(map[int64]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
	}
}

func (p *pendingInputs) get(chatID int64) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	elem, ok := p.entries[chatID]
	if !ok {
		return "", false
	}

	p.order.MoveToFront(elem)

	entry, ok := elem.Value.(*pendingInput)
	if !ok {
		return "", false
	}

	return entry.text, true
}

func (p *pendingInputs) set(chatID int64, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if elem, ok := p.entries[chatID]; ok {
		if entry, castOk := elem.Value.(*pendingInput); castOk {
			entry.text = text
		}
		p.order.MoveToFront(elem)

		return
	}

	p.entries[chatID] = p.order.PushFront(&pendingInput{chatID: chatID, text: text})

	for len(p.entries) > p.maxEntries {
		elem := p.order.Back()
		if elem == nil {
			return
		}

		if entry, ok := elem.Value.(*pendingInput); ok {
			delete(p.entries, entry.chatID)
		}
		p.order.Remove(elem)
	}
}
