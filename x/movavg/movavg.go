package movavg

// Window is a fixed-capacity moving average over float32 samples. Once the
// window is full, Push evicts the oldest sample. Capacity never grows.
type Window struct {
	buf  []float32
	n    int // samples held, <= cap
	head int // next write slot
}

// New returns a window holding up to capacity samples. Capacity < 1 is
// coerced to 1.
func New(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{buf: make([]float32, capacity)}
}

// Push records a sample, evicting the oldest one once the window is full.
func (w *Window) Push(v float32) {
	w.buf[w.head] = v
	w.head++
	if w.head == len(w.buf) {
		w.head = 0
	}
	if w.n < len(w.buf) {
		w.n++
	}
}

// Mean returns the arithmetic mean of the samples currently held. Callers
// seed the window before querying; an empty window reads as 0.
func (w *Window) Mean() float32 {
	if w.n == 0 {
		return 0
	}
	var sum float32
	for i := 0; i < w.n; i++ {
		sum += w.buf[i]
	}
	return sum / float32(w.n)
}

// Len reports how many samples are currently held.
func (w *Window) Len() int { return w.n }

// Cap reports the fixed capacity.
func (w *Window) Cap() int { return len(w.buf) }
