package checker

import "github.com/linzero/casreg/verdict"

// WriteRecord is an accepted write's position in the chain.
type WriteRecord[W comparable, V comparable] struct {
	Value       V
	PrevWriteID W
	NextWriteID W
	HasNext     bool
	LTS         int
	ObservedAt  int64
}

type pendingWrite[W comparable, V comparable] struct {
	PrevWriteID W
	Value       V
}

type pendingRead[W comparable] struct {
	StartedAt      int64
	SnapshotLatest W
}

// State is the full checker state machine for one history. Create with
// New and drive with Check.
type State[W comparable, V comparable] struct {
	writeIDs       map[W]struct{}
	accepted       map[W]*WriteRecord[W, V]
	acceptedLatest W
	pending        map[W]pendingWrite[W, V]
	pendingReads   map[int]pendingRead[W]
	err            *verdict.Violation
	lastTS         int64
}

// New creates a State seeded with a genesis write (lts 0, no predecessor).
func New[W comparable, V comparable](genesisWriteID W, genesisValue V) *State[W, V] {
	s := &State[W, V]{
		writeIDs:       map[W]struct{}{genesisWriteID: {}},
		accepted:       map[W]*WriteRecord[W, V]{},
		pending:        map[W]pendingWrite[W, V]{},
		pendingReads:   map[int]pendingRead[W]{},
		acceptedLatest: genesisWriteID,
	}
	s.accepted[genesisWriteID] = &WriteRecord[W, V]{Value: genesisValue, LTS: 0}
	return s
}

// ChainEntry is one accepted write, as reported by Chain.
type ChainEntry[W comparable, V comparable] struct {
	WriteID    W
	Value      V
	LTS        int
	ObservedAt int64
}

// Chain returns the accepted write chain from genesis to AcceptedLatest, in
// predecessor-to-successor order. Meant for diagnostics/explain output, not
// the hot path.
func (s *State[W, V]) Chain() []ChainEntry[W, V] {
	newestFirst := make([]ChainEntry[W, V], 0, len(s.accepted))
	cur := s.acceptedLatest
	for {
		rec := s.accepted[cur]
		newestFirst = append(newestFirst, ChainEntry[W, V]{
			WriteID: cur, Value: rec.Value, LTS: rec.LTS, ObservedAt: rec.ObservedAt,
		})
		if rec.LTS == 0 {
			break
		}
		cur = rec.PrevWriteID
	}
	for i, j := 0, len(newestFirst)-1; i < j; i, j = i+1, j-1 {
		newestFirst[i], newestFirst[j] = newestFirst[j], newestFirst[i]
	}
	return newestFirst
}

// AcceptedLatest returns the token of the current chain head.
func (s *State[W, V]) AcceptedLatest() W { return s.acceptedLatest }
