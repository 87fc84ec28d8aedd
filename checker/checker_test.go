package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linzero/casreg/checker"
	"github.com/linzero/casreg/history"
	"github.com/linzero/casreg/verdict"
)

func wr(t int64, p int, wid, prev, value string) history.Event[string, string] {
	return history.Event[string, string]{
		Time: t, Process: p, Type: history.Invoke, F: history.Write,
		WriteID: wid, PrevWriteID: prev, Value: value,
	}
}

func okw(t int64, p int, wid string) history.Event[string, string] {
	return history.Event[string, string]{Time: t, Process: p, Type: history.Ok, F: history.Write, WriteID: wid}
}

func rdI(t int64, p int) history.Event[string, string] {
	return history.Event[string, string]{Time: t, Process: p, Type: history.Invoke, F: history.Read}
}

func rdOk(t int64, p int, wid, value string) history.Event[string, string] {
	return history.Event[string, string]{Time: t, Process: p, Type: history.Ok, F: history.Read, WriteID: wid, Value: value}
}

func newState() *checker.State[string, string] {
	return checker.New("w0", "v0")
}

func TestHappyChain(t *testing.T) {
	events := []history.Event[string, string]{
		wr(1, 0, "w1", "w0", "v1"),
		okw(2, 0, "w1"),
		rdI(3, 1),
		rdOk(4, 1, "w1", "v1"),
	}
	res, err := newState().Check(events)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestReadObservesBeforeOk(t *testing.T) {
	events := []history.Event[string, string]{
		wr(1, 0, "w1", "w0", "v1"),
		rdI(2, 1),
		rdOk(3, 1, "w1", "v1"),
		okw(4, 0, "w1"),
	}
	s := newState()
	res, err := s.Check(events)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "w1", s.AcceptedLatest())
}

func TestStaleRead(t *testing.T) {
	events := []history.Event[string, string]{
		wr(1, 0, "w1", "w0", "v1"),
		okw(2, 0, "w1"),
		rdI(3, 1),
		rdOk(4, 1, "w0", "v0"),
	}
	res, err := newState().Check(events)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Details, "stale read")
}

func TestBranchingChain(t *testing.T) {
	events := []history.Event[string, string]{
		wr(1, 0, "w1", "w0", "v1"),
		okw(2, 0, "w1"),
		wr(3, 1, "w2", "w0", "v2"),
		okw(4, 1, "w2"),
	}
	res, err := newState().Check(events)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Details, "branching chain")
	assert.Contains(t, res.Details, "w2 -> w0 conflicts with already-accepted successor w0 -> w1")
}

func TestValueMismatch(t *testing.T) {
	events := []history.Event[string, string]{
		wr(1, 0, "w1", "w0", "v1"),
		okw(2, 0, "w1"),
		rdI(3, 1),
		rdOk(4, 1, "w1", "v_other"),
	}
	res, err := newState().Check(events)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Details, "value mismatch")
}

func TestTransitiveAcceptanceThroughRead(t *testing.T) {
	events := []history.Event[string, string]{
		wr(1, 0, "w1", "w0", "v1"),
		wr(2, 1, "w2", "w1", "v2"),
		rdI(3, 2),
		rdOk(4, 2, "w2", "v2"),
	}
	s := newState()
	res, err := s.Check(events)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "w2", s.AcceptedLatest())
	chain := s.Chain()
	require.Len(t, chain, 3)
	assert.Equal(t, []string{"w0", "w1", "w2"}, []string{chain[0].WriteID, chain[1].WriteID, chain[2].WriteID})
}

func TestUnknownWriteOnRead(t *testing.T) {
	events := []history.Event[string, string]{
		rdI(1, 0),
		rdOk(2, 0, "ghost", "vX"),
	}
	res, err := newState().Check(events)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Details, "unknown write")
}

func TestNonMonotonicTimeIsHistoryError(t *testing.T) {
	events := []history.Event[string, string]{
		wr(5, 0, "w1", "w0", "v1"),
		okw(1, 0, "w1"),
	}
	_, err := newState().Check(events)
	require.Error(t, err)
	var herr *verdict.HistoryError
	assert.ErrorAs(t, err, &herr)
}

func TestDuplicateWriteIDIsHistoryError(t *testing.T) {
	events := []history.Event[string, string]{
		wr(1, 0, "w1", "w0", "v1"),
		wr(2, 0, "w1", "w0", "v1"),
	}
	_, err := newState().Check(events)
	require.Error(t, err)
	var herr *verdict.HistoryError
	assert.ErrorAs(t, err, &herr)
}

func TestDuplicatePendingReadIsHistoryError(t *testing.T) {
	events := []history.Event[string, string]{
		rdI(1, 0),
		rdI(2, 0),
	}
	_, err := newState().Check(events)
	require.Error(t, err)
	var herr *verdict.HistoryError
	assert.ErrorAs(t, err, &herr)
}

func TestMissingInvokeOnReadIsHistoryError(t *testing.T) {
	events := []history.Event[string, string]{
		rdOk(1, 0, "w0", "v0"),
	}
	_, err := newState().Check(events)
	require.Error(t, err)
	var herr *verdict.HistoryError
	assert.ErrorAs(t, err, &herr)
}

func TestCheckStopsAtFirstError(t *testing.T) {
	events := []history.Event[string, string]{
		wr(1, 0, "w1", "w0", "v1"),
		okw(2, 0, "w1"),
		rdI(3, 1),
		rdOk(4, 1, "w0", "v0"), // stale read: terminal
		wr(5, 0, "w2", "w1", "v2"),
		okw(6, 0, "w2"),
	}
	s := newState()
	res, err := s.Check(events)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	// the later write must not have been promoted past the terminal error
	assert.Equal(t, "w1", s.AcceptedLatest())
}
