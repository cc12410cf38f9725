package query

// Tee forks q into n queries that share a single pass over q. Values are
// buffered until every fork has read them, so forks may be driven at
// different paces. The source is started by whichever fork is driven first.
//
// Forks are single-use even when q is restartable: a fork that has been
// driven and closed yields nothing afterwards.
func (q *Query[T]) Tee(n int) []*Query[T] {
	if n <= 0 {
		return nil
	}
	var shared *teeBuffer[T]
	forks := make([]*Query[T], n)
	for i := range forks {
		forks[i] = &Query[T]{
			create: func() Iterator[T] {
				if shared == nil {
					shared = newTeeBuffer(q.create(), n)
				}
				return &teeIter[T]{buf: shared, id: i}
			},
		}
	}
	return forks
}

// teeIterators forks an already started iterator into n cursors.
func teeIterators[T any](source Iterator[T], n int) []Iterator[T] {
	shared := newTeeBuffer(source, n)
	forks := make([]Iterator[T], n)
	for i := range forks {
		forks[i] = &teeIter[T]{buf: shared, id: i}
	}
	return forks
}

// teeBuffer holds the values pulled from source that at least one open
// fork has not read yet. offset is the absolute position of items[0].
type teeBuffer[T any] struct {
	source Iterator[T]
	items  []T
	offset int
	pos    []int
	open   []bool
	live   int
	done   bool
	err    error
}

func newTeeBuffer[T any](source Iterator[T], n int) *teeBuffer[T] {
	open := make([]bool, n)
	for i := range open {
		open[i] = true
	}
	return &teeBuffer[T]{
		source: source,
		pos:    make([]int, n),
		open:   open,
		live:   n,
	}
}

func (b *teeBuffer[T]) next(id int) (T, bool, error) {
	var zero T
	if !b.open[id] {
		return zero, false, nil
	}
	if rel := b.pos[id] - b.offset; rel < len(b.items) {
		val := b.items[rel]
		b.pos[id]++
		b.trim()
		return val, true, nil
	}
	if b.err != nil {
		return zero, false, b.err
	}
	if b.done {
		return zero, false, nil
	}
	val, ok, err := b.source.Next()
	if err != nil {
		b.err = err
		return zero, false, err
	}
	if !ok {
		b.done = true
		return zero, false, nil
	}
	b.items = append(b.items, val)
	b.pos[id]++
	b.trim()
	return val, true, nil
}

// trim drops the values every open fork has already read.
func (b *teeBuffer[T]) trim() {
	lowest := -1
	for id, open := range b.open {
		if open && (lowest < 0 || b.pos[id] < lowest) {
			lowest = b.pos[id]
		}
	}
	if lowest < 0 {
		b.items = nil
		return
	}
	if drop := lowest - b.offset; drop > 0 {
		clear(b.items[:drop])
		b.items = b.items[drop:]
		b.offset = lowest
	}
}

func (b *teeBuffer[T]) close(id int) error {
	if !b.open[id] {
		return nil
	}
	b.open[id] = false
	b.live--
	b.trim()
	if b.live == 0 {
		return b.source.Close()
	}
	return nil
}

type teeIter[T any] struct {
	buf *teeBuffer[T]
	id  int
}

func (it *teeIter[T]) Next() (T, bool, error) { return it.buf.next(it.id) }

func (it *teeIter[T]) Close() error { return it.buf.close(it.id) }
