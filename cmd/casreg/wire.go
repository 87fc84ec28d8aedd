package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/linzero/casreg/history"
)

// wireEvent is the on-disk/over-the-wire JSON shape of history.Event, with
// string write-ids and values: the CLI always instantiates the generic
// checker as casreg.Check[string, string].
type wireEvent struct {
	Time        int64  `json:"time"`
	Process     int    `json:"process"`
	Type        string `json:"type"`
	F           string `json:"f"`
	WriteID     string `json:"write_id,omitempty"`
	PrevWriteID string `json:"prev_write_id,omitempty"`
	Value       string `json:"value,omitempty"`
}

func (w wireEvent) toEvent() history.Event[string, string] {
	return history.Event[string, string]{
		Time:        w.Time,
		Process:     w.Process,
		Type:        history.Type(w.Type),
		F:           history.Kind(w.F),
		WriteID:     w.WriteID,
		PrevWriteID: w.PrevWriteID,
		Value:       w.Value,
	}
}

func fromEvent(e history.Event[string, string]) wireEvent {
	return wireEvent{
		Time: e.Time, Process: e.Process,
		Type: string(e.Type), F: string(e.F),
		WriteID: e.WriteID, PrevWriteID: e.PrevWriteID, Value: e.Value,
	}
}

// decodeHistory auto-detects a JSON array of events versus newline-delimited
// JSON by sniffing the first non-whitespace byte, per the wire format's
// array-or-NDJSON contract.
func decodeHistory(r io.Reader) ([]history.Event[string, string], error) {
	buf := bufio.NewReader(r)
	first, err := peekFirstNonSpace(buf)
	if err != nil {
		return nil, errors.Wrap(err, "reading history")
	}

	if first == '[' {
		var wires []wireEvent
		if err := json.NewDecoder(buf).Decode(&wires); err != nil {
			return nil, errors.Wrap(err, "decoding JSON array history")
		}
		events := make([]history.Event[string, string], len(wires))
		for i, w := range wires {
			events[i] = w.toEvent()
		}
		return events, nil
	}

	var events []history.Event[string, string]
	scanner := bufio.NewScanner(buf)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var w wireEvent
		if err := json.Unmarshal(line, &w); err != nil {
			return nil, errors.Wrap(err, "decoding NDJSON history line")
		}
		events = append(events, w.toEvent())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning NDJSON history")
	}
	return events, nil
}

func peekFirstNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if !isJSONSpace(b) {
			if err := r.UnreadByte(); err != nil {
				return 0, err
			}
			return b, nil
		}
	}
}

func isJSONSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
