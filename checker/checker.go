package checker

import (
	"github.com/linzero/casreg/history"
	"github.com/linzero/casreg/verdict"
)

// Check drives the state machine over a normalized event sequence (see
// history.Normalize) and returns the final verdict. A non-nil error means
// the history itself was malformed (see verdict.HistoryError); it is
// always a *verdict.HistoryError. A linearizability violation is instead
// reported as Result.Valid == false with Result.Details explaining it.
//
// Check stops at the first event that would extend an already-failed
// check, so a State must not be reused across histories: create a fresh
// State per Check call.
func (s *State[W, V]) Check(events []history.Event[W, V]) (verdict.Result, error) {
	for _, e := range events {
		if s.err != nil {
			break
		}

		var herr error
		switch {
		case e.Type == history.Invoke && e.F == history.Write:
			herr = s.startWrite(e.Time, e.PrevWriteID, e.WriteID, e.Value)
		case e.Type == history.Ok && e.F == history.Write:
			herr = s.endWrite(e.Time, e.WriteID)
		case e.Type == history.Invoke && e.F == history.Read:
			herr = s.startRead(e.Time, e.Process)
		case e.Type == history.Ok && e.F == history.Read:
			herr = s.endRead(e.Time, e.Process, e.WriteID, e.Value)
		}
		if herr != nil {
			return verdict.Result{}, herr
		}
	}

	if s.err != nil {
		return verdict.Result{Valid: false, Details: s.err.Error()}, nil
	}
	return verdict.Result{Valid: true}, nil
}

// startWrite implements 4.2.1: invoke :write.
func (s *State[W, V]) startWrite(ts int64, prev, wid W, value V) error {
	if ts < s.lastTS {
		return verdict.NonMonotonicTime(s.lastTS, ts)
	}
	if _, dup := s.writeIDs[wid]; dup {
		return verdict.DuplicateWriteID(any(wid))
	}
	s.writeIDs[wid] = struct{}{}
	s.pending[wid] = pendingWrite[W, V]{PrevWriteID: prev, Value: value}
	s.lastTS = ts
	return nil
}

// endWrite implements 4.2.2: ok :write.
func (s *State[W, V]) endWrite(ts int64, wid W) error {
	if ts < s.lastTS {
		return verdict.NonMonotonicTime(s.lastTS, ts)
	}
	s.lastTS = ts
	if _, already := s.accepted[wid]; already {
		return nil // a read observed it first
	}
	s.observeWrite(ts, wid)
	return nil
}

// observeWrite implements 4.2.3: promote wid, and any unaccepted
// predecessors it transitively depends on, into the accepted chain, or
// record a violation.
func (s *State[W, V]) observeWrite(ts int64, wid W) {
	if s.err != nil {
		return
	}
	if _, already := s.accepted[wid]; already {
		return
	}

	type popped struct {
		writeID W
		value   V
	}
	var tail []popped
	cur := wid
	for {
		pw, isPending := s.pending[cur]
		if !isPending {
			break
		}
		delete(s.pending, cur)
		tail = append([]popped{{writeID: cur, value: pw.Value}}, tail...)
		cur = pw.PrevWriteID
	}

	rec, isAccepted := s.accepted[cur]
	if !isAccepted {
		s.err = verdict.UnknownWrite(any(wid))
		return
	}

	if cur == s.acceptedLatest {
		prev := cur
		lts := rec.LTS
		for _, pw := range tail {
			lts++
			s.accepted[prev].NextWriteID = pw.writeID
			s.accepted[prev].HasNext = true
			s.accepted[pw.writeID] = &WriteRecord[W, V]{
				Value:       pw.value,
				PrevWriteID: prev,
				LTS:         lts,
				ObservedAt:  ts,
			}
			prev = pw.writeID
		}
		s.acceptedLatest = wid
		return
	}

	chain := make([]any, len(tail))
	for i, pw := range tail {
		chain[i] = any(pw.writeID)
	}
	s.err = verdict.BranchingChain(chain, any(cur), any(rec.NextWriteID))
}

// startRead implements 4.2.4: invoke :read.
func (s *State[W, V]) startRead(ts int64, process int) error {
	if ts < s.lastTS {
		return verdict.NonMonotonicTime(s.lastTS, ts)
	}
	if _, exists := s.pendingReads[process]; exists {
		return verdict.DuplicatePendingRead(process)
	}
	s.pendingReads[process] = pendingRead[W]{StartedAt: ts, SnapshotLatest: s.acceptedLatest}
	s.lastTS = ts
	return nil
}

// endRead implements 4.2.5: ok :read.
func (s *State[W, V]) endRead(ts int64, process int, wid W, value V) error {
	if ts < s.lastTS {
		return verdict.NonMonotonicTime(s.lastTS, ts)
	}
	s.lastTS = ts

	pr, exists := s.pendingReads[process]
	if !exists {
		return verdict.MissingInvoke(process)
	}
	delete(s.pendingReads, process) // removed unconditionally, per 4.2.5

	if s.err != nil {
		return nil
	}

	if _, ok := s.accepted[wid]; ok {
		s.checkRead(pr, wid, value)
		return nil
	}
	if _, ok := s.pending[wid]; ok {
		s.observeWrite(ts, wid)
		if s.err == nil {
			s.checkRead(pr, wid, value)
		}
		return nil
	}
	s.err = verdict.UnknownWrite(any(wid))
	return nil
}

// checkRead implements 4.2.6: staleness then value agreement.
func (s *State[W, V]) checkRead(pr pendingRead[W], wid W, value V) {
	known := s.accepted[pr.SnapshotLatest]
	seen := s.accepted[wid]

	if known.LTS > seen.LTS {
		chain := s.chainBetween(pr.SnapshotLatest, wid)
		s.err = verdict.StaleRead(any(wid), chain, known.ObservedAt, pr.StartedAt)
		return
	}
	if seen.Value != value {
		s.err = verdict.ValueMismatch(any(wid), any(seen.Value), any(value))
	}
}

// chainBetween walks the accepted chain backwards from newer to older,
// returning the evidence chain oldest (to) to newest (from) as []any for
// rendering in a Violation.
func (s *State[W, V]) chainBetween(from, to W) []any {
	var newestFirst []W
	cur := from
	for {
		newestFirst = append(newestFirst, cur)
		if cur == to {
			break
		}
		cur = s.accepted[cur].PrevWriteID
	}
	out := make([]any, len(newestFirst))
	for i, w := range newestFirst {
		out[len(out)-1-i] = any(w)
	}
	return out
}
