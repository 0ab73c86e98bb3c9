package combat

// TextQueue is an append-only FIFO of narration lines drained by the
// presentation layer.
type TextQueue struct {
	lines []string
	head  int
}

func NewTextQueue() *TextQueue { return &TextQueue{} }

func (q *TextQueue) Add(lines ...string) {
	q.lines = append(q.lines, lines...)
}

// Next pops the oldest pending line.
func (q *TextQueue) Next() (string, bool) {
	if q.head >= len(q.lines) {
		return "", false
	}
	s := q.lines[q.head]
	q.head++
	if q.head == len(q.lines) {
		q.lines = q.lines[:0]
		q.head = 0
	}
	return s, true
}

func (q *TextQueue) Peek() (string, bool) {
	if q.head >= len(q.lines) {
		return "", false
	}
	return q.lines[q.head], true
}

// Drain pops every pending line in order.
func (q *TextQueue) Drain() []string {
	if q.head >= len(q.lines) {
		return nil
	}
	out := append([]string(nil), q.lines[q.head:]...)
	q.lines = q.lines[:0]
	q.head = 0
	return out
}

func (q *TextQueue) Len() int { return len(q.lines) - q.head }
