package diag

import "sort"

// Bag accumulates diagnostics from every compiler stage and provides the
// stable, deterministic ordering the façade guarantees to callers.
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty Bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends d to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Merge appends every diagnostic from other into b.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// HasErrors reports whether any diagnostic has SevError severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic has SevWarning severity.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity == SevWarning {
			return true
		}
	}
	return false
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the accumulated diagnostics. Callers must not mutate the
// returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders diagnostics by (startLine, startColumn, code), the ordering
// the compiler façade guarantees to callers.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Span.StartLine != dj.Span.StartLine {
			return di.Span.StartLine < dj.Span.StartLine
		}
		if di.Span.StartCol != dj.Span.StartCol {
			return di.Span.StartCol < dj.Span.StartCol
		}
		return di.Code.ID() < dj.Code.ID()
	})
}
