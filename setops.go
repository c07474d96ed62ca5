package bptree

// Set algebra over sorted dual-iteration. Both operands iterate in
// ascending order, so one lockstep merge walk classifies every member
// as left-only, common, or right-only in O(n + m) comparisons with no
// storage beyond the two cursors (plus the result of a mutating op).
//
// All binary operations require both sets to order keys compatibly;
// that is the caller's contract.

// classify merge-walks both sets and collects the members selected by
// the three side flags, in ascending order.
func (s *Set[K]) classify(other *Set[K], onlyLeft, both, onlyRight bool) []K {
	var out []K
	li, ri := s.Begin(), other.Begin()
	defer li.Release()
	defer ri.Release()
	lok, rok := li.Next(), ri.Next()
	for lok && rok {
		lk, _, _ := li.Current()
		rk, _, _ := ri.Current()
		switch c := s.cmp(lk, rk); {
		case c < 0:
			if onlyLeft {
				out = append(out, lk)
			}
			lok = li.Next()
		case c > 0:
			if onlyRight {
				out = append(out, rk)
			}
			rok = ri.Next()
		default:
			if both {
				out = append(out, lk)
			}
			lok = li.Next()
			rok = ri.Next()
		}
	}
	if onlyLeft {
		for lok {
			lk, _, _ := li.Current()
			out = append(out, lk)
			lok = li.Next()
		}
	}
	if onlyRight {
		for rok {
			rk, _, _ := ri.Current()
			out = append(out, rk)
			rok = ri.Next()
		}
	}
	return out
}

// tally merge-walks both sets and counts members per side.
func (s *Set[K]) tally(other *Set[K]) (onlyLeft, both, onlyRight int) {
	li, ri := s.Begin(), other.Begin()
	defer li.Release()
	defer ri.Release()
	lok, rok := li.Next(), ri.Next()
	for lok && rok {
		lk, _, _ := li.Current()
		rk, _, _ := ri.Current()
		switch c := s.cmp(lk, rk); {
		case c < 0:
			onlyLeft++
			lok = li.Next()
		case c > 0:
			onlyRight++
			rok = ri.Next()
		default:
			both++
			lok = li.Next()
			rok = ri.Next()
		}
	}
	for ; lok; lok = li.Next() {
		onlyLeft++
	}
	for ; rok; rok = ri.Next() {
		onlyRight++
	}
	return onlyLeft, both, onlyRight
}

// rebuild replaces the receiver's members with the given ascending,
// duplicate-free keys.
func (s *Set[K]) rebuild(keys []K) {
	s.tree.Clear()
	for _, k := range keys {
		s.tree.Insert(k, struct{}{})
	}
}

// UnionWith adds every member of other to the receiver.
func (s *Set[K]) UnionWith(other *Set[K]) {
	merged := s.classify(other, true, true, true)
	T().Debugf("set union: %d members", len(merged))
	s.rebuild(merged)
}

// IntersectWith keeps only the members also contained in other.
func (s *Set[K]) IntersectWith(other *Set[K]) {
	s.rebuild(s.classify(other, false, true, false))
}

// ExceptWith removes every member contained in other.
func (s *Set[K]) ExceptWith(other *Set[K]) {
	s.rebuild(s.classify(other, true, false, false))
}

// SymmetricExceptWith keeps the members contained in exactly one of
// the two sets.
func (s *Set[K]) SymmetricExceptWith(other *Set[K]) {
	s.rebuild(s.classify(other, true, false, true))
}

// IsSubsetOf reports whether every member of the receiver is contained
// in other.
func (s *Set[K]) IsSubsetOf(other *Set[K]) bool {
	onlyLeft, _, _ := s.tally(other)
	return onlyLeft == 0
}

// IsProperSubsetOf reports whether the receiver is a subset of other
// and other has at least one member more.
func (s *Set[K]) IsProperSubsetOf(other *Set[K]) bool {
	onlyLeft, _, onlyRight := s.tally(other)
	return onlyLeft == 0 && onlyRight > 0
}

// IsSupersetOf reports whether every member of other is contained in
// the receiver.
func (s *Set[K]) IsSupersetOf(other *Set[K]) bool {
	_, _, onlyRight := s.tally(other)
	return onlyRight == 0
}

// IsProperSupersetOf reports whether the receiver is a superset of
// other and has at least one member more.
func (s *Set[K]) IsProperSupersetOf(other *Set[K]) bool {
	onlyLeft, _, onlyRight := s.tally(other)
	return onlyRight == 0 && onlyLeft > 0
}

// Overlaps reports whether the two sets share at least one member.
func (s *Set[K]) Overlaps(other *Set[K]) bool {
	_, both, _ := s.tally(other)
	return both > 0
}

// SetEquals reports whether both sets hold exactly the same members.
func (s *Set[K]) SetEquals(other *Set[K]) bool {
	onlyLeft, _, onlyRight := s.tally(other)
	return onlyLeft == 0 && onlyRight == 0
}
