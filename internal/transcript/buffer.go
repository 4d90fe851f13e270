// Package transcript holds the shared conversation text that a rendering
// loop displays while a generation worker appends to it. Access goes through
// a single mutex held only for the copy, never across a blocking call.
package transcript

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultPollInterval is how long a drain loop waits when the stream is
// empty before polling again.
const DefaultPollInterval = 20 * time.Millisecond

// Buffer is a mutex-guarded append-only text buffer.
type Buffer struct {
	mu sync.Mutex
	b  strings.Builder
}

// Append adds text to the transcript.
func (t *Buffer) Append(s string) {
	t.mu.Lock()
	t.b.WriteString(s)
	t.mu.Unlock()
}

// String returns a copy of the transcript.
func (t *Buffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.b.String()
}

// Len returns the transcript length in bytes.
func (t *Buffer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.b.Len()
}

// Reset clears the transcript.
func (t *Buffer) Reset() {
	t.mu.Lock()
	t.b.Reset()
	t.mu.Unlock()
}

// Source is the non-blocking side of a fragment stream. session.Stream
// satisfies it.
type Source interface {
	// TryRecv returns the next fragment if one is buffered. ok reports
	// whether frag is valid; closed reports that the stream has ended and
	// no more fragments will arrive.
	TryRecv() (frag string, ok bool, closed bool)
}

// Drain polls the stream at the given cadence, appending each fragment to
// the buffer (and mirroring it to onFrag when non-nil) until the stream
// closes or ctx is cancelled. When the stream is empty it sleeps the
// interval rather than spinning; while fragments are flowing it does not
// sleep at all. Returns the number of fragments consumed.
func Drain(ctx context.Context, st Source, buf *Buffer, interval time.Duration, onFrag func(string)) int {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	n := 0
	for {
		frag, ok, closed := st.TryRecv()
		switch {
		case closed:
			return n
		case ok:
			buf.Append(frag)
			if onFrag != nil {
				onFrag(frag)
			}
			n++
		default:
			select {
			case <-ctx.Done():
				return n
			case <-time.After(interval):
			}
		}
	}
}
