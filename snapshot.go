package ink

import "fmt"

// Snapshot is an immutable copy of a PixelBuffer's pixels.
type Snapshot struct {
	width  int
	height int
	data   []uint8
}

// Snapshot captures the current pixels.
func (p *PixelBuffer) Snapshot() *Snapshot {
	s := &Snapshot{width: p.width, height: p.height, data: make([]uint8, len(p.data))}
	copy(s.data, p.data)
	return s
}

// Restore overwrites the buffer with the snapshot's pixels.
func (p *PixelBuffer) Restore(s *Snapshot) error {
	if s.width != p.width || s.height != p.height {
		return fmt.Errorf("%w: snapshot %dx%d into %dx%d", ErrSizeMismatch, s.width, s.height, p.width, p.height)
	}
	copy(p.data, s.data)
	return nil
}

// Width returns the width of the captured buffer.
func (s *Snapshot) Width() int { return s.width }

// Height returns the height of the captured buffer.
func (s *Snapshot) Height() int { return s.height }

// Equal reports whether the snapshot holds exactly the pixels of p.
func (s *Snapshot) Equal(p *PixelBuffer) bool {
	if s.width != p.width || s.height != p.height {
		return false
	}
	for i := range s.data {
		if s.data[i] != p.data[i] {
			return false
		}
	}
	return true
}

// Transparent reports whether every pixel in the snapshot has zero alpha.
func (s *Snapshot) Transparent() bool {
	for i := 3; i < len(s.data); i += 4 {
		if s.data[i] != 0 {
			return false
		}
	}
	return true
}
