package emitter

import (
	"strings"
	"sync"
)

// Buffer is an ordered list of formatted commands waiting for a flush. It
// is safe for concurrent use.
type Buffer struct {
	mu       sync.Mutex
	commands []string
}

// Append adds cmd after every command already buffered.
func (b *Buffer) Append(cmd string) {
	b.mu.Lock()
	b.commands = append(b.commands, cmd)
	b.mu.Unlock()
}

// Len returns the number of buffered commands.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.commands)
}

// Commands returns a copy of the buffered commands in insertion order.
func (b *Buffer) Commands() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.commands))
	copy(out, b.commands)
	return out
}

// DrainJoined empties the buffer and returns its commands joined by sep,
// in insertion order. The commands are detached under the lock before
// joining, so no caller sees a joined payload while they are still buffered.
func (b *Buffer) DrainJoined(sep string) string {
	b.mu.Lock()
	commands := b.commands
	b.commands = nil
	b.mu.Unlock()
	return strings.Join(commands, sep)
}
