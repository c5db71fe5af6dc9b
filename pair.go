package doublebuf

// Pair constructs a SharedCell holding front and back as its two buffers
// and returns the Reader/Writer handle pair for it. front and back should
// already be in the same logical state (an empty map, a zeroed counter,
// ...): nothing forces them into sync before the first flush.
func Pair[B any](strategy Strategy, front, back B) (*Reader[B], *Writer[B]) {
	return PairWithExtra[B](strategy, front, back, nil)
}

// PairWithExtra is Pair plus an arbitrary payload stored alongside the
// buffers and handed back by Writer.Split/SplitMut. The map façade in
// doublebuf/concmap doesn't need one, but the engine carries it end to
// end the way the source it's grounded on does.
func PairWithExtra[B any](strategy Strategy, front, back B, extra any) (*Reader[B], *Writer[B]) {
	cell := &sharedCell[B]{strategy: strategy, extra: extra}
	cell.buffers[0] = front
	cell.buffers[1] = back
	cell.writerAlive.Store(true)

	w := &Writer[B]{cell: cell, strategy: strategy, tag: strategy.NewWriterTag()}
	r := &Reader[B]{cell: cell, strategy: strategy, tag: strategy.NewReaderTag()}
	return r, w
}
