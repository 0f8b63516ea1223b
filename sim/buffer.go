// Implements the shared Buffer that sits between the prep stage and the
// pickup agents. Trays are appended as prep finishes them and drained off the
// front in batches.

package sim

import (
	"fmt"
	"strings"
)

// Buffer is a FIFO holding area for trays awaiting pickup. All access is
// serialized by the event loop, so a plain slice suffices.
type Buffer struct {
	items []*WorkItem
}

// Append adds a tray to the back of the buffer.
func (b *Buffer) Append(w *WorkItem) {
	b.items = append(b.items, w)
}

// Len returns the number of trays waiting in the buffer.
func (b *Buffer) Len() int {
	return len(b.items)
}

// Peek returns the tray at the front of the buffer without removing it.
// Returns nil if the buffer is empty.
func (b *Buffer) Peek() *WorkItem {
	if len(b.items) == 0 {
		return nil
	}
	return b.items[0]
}

// TakeFront removes and returns the front n trays in buffer order.
// Panics if n exceeds the buffer length; callers clamp n first.
func (b *Buffer) TakeFront(n int) []*WorkItem {
	if n < 0 || n > len(b.items) {
		panic(fmt.Sprintf("TakeFront: n=%d out of range for buffer of length %d", n, len(b.items)))
	}
	taken := b.items[:n]
	b.items = b.items[n:]
	return taken
}

func (b *Buffer) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, it := range b.items {
		sb.WriteString(fmt.Sprint(it.ID))
		if i < len(b.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
