package planar

// edgeSet is an insertion-ordered set of edges with O(1) add, remove and
// random access. Removal swaps the last element into the hole, so the order
// depends only on the sequence of operations.
type edgeSet struct {
	items []Edge
	pos   map[Edge]int
}

func newEdgeSet(edges ...Edge) *edgeSet {
	s := &edgeSet{pos: make(map[Edge]int, len(edges))}
	for _, e := range edges {
		s.add(e)
	}
	return s
}

func (s *edgeSet) len() int { return len(s.items) }

func (s *edgeSet) at(i int) Edge { return s.items[i] }

func (s *edgeSet) has(e Edge) bool {
	_, ok := s.pos[e]
	return ok
}

func (s *edgeSet) add(e Edge) bool {
	if _, ok := s.pos[e]; ok {
		return false
	}
	s.pos[e] = len(s.items)
	s.items = append(s.items, e)
	return true
}

func (s *edgeSet) remove(e Edge) bool {
	i, ok := s.pos[e]
	if !ok {
		return false
	}
	last := len(s.items) - 1
	if i != last {
		moved := s.items[last]
		s.items[i] = moved
		s.pos[moved] = i
	}
	s.items = s.items[:last]
	delete(s.pos, e)
	return true
}

func (s *edgeSet) slice() []Edge {
	out := make([]Edge, len(s.items))
	copy(out, s.items)
	return out
}
