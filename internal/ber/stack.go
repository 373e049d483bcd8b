package ber

// Stack holds the open constructed elements, outermost first.
type Stack struct {
	frames []*Frame
}

// Push opens a frame for h.
func (s *Stack) Push(h Header) *Frame {
	f := &Frame{Header: h}
	s.frames = append(s.frames, f)
	return f
}

// Pop removes and returns the innermost frame.
func (s *Stack) Pop() *Frame {
	n := len(s.frames)
	if n == 0 {
		return nil
	}
	f := s.frames[n-1]
	s.frames[n-1] = nil
	s.frames = s.frames[:n-1]
	return f
}

// Top returns the innermost frame, or nil.
func (s *Stack) Top() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Root returns the outermost frame, or nil.
func (s *Stack) Root() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[0]
}

// Depth returns the number of open frames.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Empty reports whether no frame is open.
func (s *Stack) Empty() bool {
	return len(s.frames) == 0
}

// Reset drops every frame.
func (s *Stack) Reset() {
	for i := range s.frames {
		s.frames[i] = nil
	}
	s.frames = s.frames[:0]
}
