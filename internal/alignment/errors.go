package alignment

import "fmt"

// EmptyInputError is returned when there are no proteins or no segments to align
type EmptyInputError struct {
	Proteins int
	Segments int
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("nothing to align: %d proteins, %d segments", e.Proteins, e.Segments)
}

// UnresolvableSegmentError is returned when a segment has no positions
// under the numbering scheme
type UnresolvableSegmentError struct {
	Segment string
	Scheme  string
}

func (e *UnresolvableSegmentError) Error() string {
	return fmt.Sprintf("segment %s has no positions in numbering scheme %s", e.Segment, e.Scheme)
}

// TooLargeError is returned, before anything is built, when an alignment
// would have more cells than allowed
type TooLargeError struct {
	Proteins  int
	Positions int
	Limit     int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf(
		"alignment too large: %d proteins x %d positions = %d cells, limit is %d",
		e.Proteins, e.Positions, e.Proteins*e.Positions, e.Limit,
	)
}
