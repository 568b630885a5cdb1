package source

import "fmt"

// Span is a half-open rectangle over source text: (StartLine, StartCol) is
// inclusive, (EndLine, EndCol) is exclusive. Both lines and columns are
// one-based; columns are measured in characters, not bytes.
type Span struct {
	File     FileID
	StartLine uint32
	StartCol  uint32
	EndLine   uint32
	EndCol    uint32
}

// Empty reports whether the span covers no characters.
func (s Span) Empty() bool {
	return s.StartLine == s.EndLine && s.StartCol == s.EndCol
}

// Cover returns the smallest span that contains both s and other. Callers
// must ensure both spans belong to the same file; otherwise s is returned
// unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	out := s
	if other.StartLine < out.StartLine || (other.StartLine == out.StartLine && other.StartCol < out.StartCol) {
		out.StartLine, out.StartCol = other.StartLine, other.StartCol
	}
	if other.EndLine > out.EndLine || (other.EndLine == out.EndLine && other.EndCol > out.EndCol) {
		out.EndLine, out.EndCol = other.EndLine, other.EndCol
	}
	return out
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Point returns a zero-width span at line, col.
func Point(file FileID, line, col uint32) Span {
	return Span{File: file, StartLine: line, StartCol: col, EndLine: line, EndCol: col}
}
