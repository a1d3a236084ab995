package scheduler

// OrderFunc reports whether a is strictly preferred over b ("orders
// before" b). It must be a strict, antisymmetric relation:
// OrderFunc(a, b) && OrderFunc(b, a) must never both hold.
//
// Equal-priority threads must return false in both directions.
// FIFO/LIFO tie-breaking is a property of how a ReadySet inserts
// threads (see scheduler/priority), never of this predicate: the same
// order predicate is shared by the FIFO and LIFO ready sets, which
// differ only in where they place ties.
type OrderFunc func(a, b *Thread) bool

// InsertOrdered inserts t into threads, which must already be ordered
// by order (most-preferred first), and returns the resulting slice.
// Ties — positions where neither order(a, b) nor order(b, a) holds —
// are broken by tieBreakAfter: true keeps existing equal-ranked
// threads ahead of t (FIFO-style stability), false inserts t ahead of
// them (LIFO-style).
func InsertOrdered(threads []*Thread, t *Thread, order OrderFunc, tieBreakAfter bool) []*Thread {
	i := 0
	for i < len(threads) {
		cur := threads[i]
		if order(cur, t) {
			i++
			continue
		}
		if tieBreakAfter && !order(t, cur) {
			i++
			continue
		}
		break
	}
	threads = append(threads, nil)
	copy(threads[i+1:], threads[i:])
	threads[i] = t
	return threads
}

// RemoveThread deletes the first occurrence of t (by identity) from
// threads and reports whether it was present.
func RemoveThread(threads []*Thread, t *Thread) ([]*Thread, bool) {
	for i, cur := range threads {
		if cur == t {
			return append(threads[:i:i], threads[i+1:]...), true
		}
	}
	return threads, false
}
