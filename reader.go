package beam

// A Position is an opaque token describing a resumable location within a Reader's record
// stream. Position shapes are reader-specific; composite readers encode both a sub-source
// index and the active sub-reader's own Position.
type Position interface{}

// A SplitRequest asks a Reader to give up a portion of its remaining unread work
type SplitRequest struct {
	// Fraction of the overall work, in (0, 1), at which the split is proposed. Ignored
	// when Position is non-nil.
	Fraction float64
	// Position proposes an exact stop position instead of a fraction
	Position Position
}

// A Reader produces an ordered sequence of decoded records from one source. Readers are
// driven by a single goroutine per work item; record order is part of the contract.
type Reader interface {
	HasNext() bool                                   // true iff a record (or a deferred iteration error) is pending
	NextRecord() (interface{}, error)                // the next record in source order; NoMoreRecordsError past exhaustion
	Progress() Position                              // a resumable position for the next unread record, or nil if unknown
	RequestSplit(req SplitRequest) (Position, error) // the accepted stop position, or UnsplittableReaderError
	Close() error                                    // releases all resources held by this Reader
}

// PositionRestorer is an optional capability for Readers which can begin iteration at a
// previously-issued Position rather than at the start of their source. Restoration must
// happen before the first record is read.
type PositionRestorer interface {
	RestorePosition(pos Position) error
}
