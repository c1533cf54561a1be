package cubetimer

import "encoding/binary"

// Persisted record format. Every value is a length-framed envelope:
//
//	magic "CTDB" (4) | version (1) | contents tag (1) | payload length (4) | payload
//
// The payload is a sequence of tagged fields, each framed as
// tag (1) | length (4) | bytes. Readers skip unknown field tags, which
// keeps old readers compatible with records written by newer versions.
// All integers are little-endian. Every buffer is fully bounds-checked
// before any field is interpreted; a failure surfaces as a CorruptError
// naming the record kind.

const (
	recordMagic   = "CTDB"
	recordVersion = 1
)

// Envelope contents tags. These are the on-disk discriminants and must
// not change.
const (
	contentsCubeSolve   = 1
	contentsSolveList   = 2
	contentsSession     = 3
	contentsSessionList = 4
)

// Solve payload fields.
const (
	solveFieldScramble = 1
	solveFieldCreated  = 2
	solveFieldOK       = 3
	solveFieldTime     = 4
	solveFieldPenalty  = 5
	solveFieldDevice   = 6
	solveFieldMoves    = 7
	solveFieldSplits   = 8
	solveFieldUpdate   = 9
)

// Session payload fields.
const (
	sessionFieldType   = 1
	sessionFieldName   = 2
	sessionFieldUpdate = 3
)

// List payloads repeat a single field, one entry per ID.
const listFieldID = 1

// Sync sub-record fields.
const (
	syncFieldID   = 1
	syncFieldTime = 2
	syncFieldSync = 3
)

// codec serializes records and synthesizes sync bookkeeping for records
// written before sync records existed.
type codec struct {
	ids   IDGenerator
	clock Clock
}

// fieldWriter accumulates tagged fields into a payload.
type fieldWriter struct {
	buf []byte
}

func (w *fieldWriter) field(tag byte, data []byte) {
	w.buf = append(w.buf, tag)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(len(data)))
	w.buf = append(w.buf, data...)
}

func (w *fieldWriter) uint32Field(tag byte, v uint32) {
	w.field(tag, binary.LittleEndian.AppendUint32(nil, v))
}

func (w *fieldWriter) uint64Field(tag byte, v uint64) {
	w.field(tag, binary.LittleEndian.AppendUint64(nil, v))
}

func (w *fieldWriter) stringField(tag byte, s string) {
	w.field(tag, []byte(s))
}

func (w *fieldWriter) boolField(tag byte, v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	w.field(tag, []byte{b})
}

// fieldReader walks a payload's tagged fields with full bounds checking.
type fieldReader struct {
	kind string
	data []byte
	off  int
}

// next returns the next field, or ok=false at the end of the payload.
func (r *fieldReader) next() (tag byte, data []byte, ok bool, err error) {
	if r.off == len(r.data) {
		return 0, nil, false, nil
	}
	if len(r.data)-r.off < 5 {
		return 0, nil, false, &CorruptError{Kind: r.kind, Reason: "truncated field header"}
	}
	tag = r.data[r.off]
	length := int(binary.LittleEndian.Uint32(r.data[r.off+1 : r.off+5]))
	r.off += 5
	if len(r.data)-r.off < length {
		return 0, nil, false, &CorruptError{Kind: r.kind, Reason: "field length exceeds payload"}
	}
	data = r.data[r.off : r.off+length]
	r.off += length
	return tag, data, true, nil
}

func (r *fieldReader) corrupt(reason string) error {
	return &CorruptError{Kind: r.kind, Reason: reason}
}

// encodeEnvelope frames a payload with the record magic and contents tag.
func encodeEnvelope(contents byte, payload []byte) []byte {
	buf := make([]byte, 0, 10+len(payload))
	buf = append(buf, recordMagic...)
	buf = append(buf, recordVersion, contents)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(payload)))
	return append(buf, payload...)
}

// decodeEnvelope verifies the framing of a record and returns its contents
// tag and payload. Unknown contents tags are corruption.
func decodeEnvelope(kind string, data []byte) (byte, []byte, error) {
	if len(data) < 10 {
		return 0, nil, &CorruptError{Kind: kind, Reason: "record too short"}
	}
	if string(data[:4]) != recordMagic {
		return 0, nil, &CorruptError{Kind: kind, Reason: "bad magic"}
	}
	if data[4] != recordVersion {
		return 0, nil, &CorruptError{Kind: kind, Reason: "unsupported version"}
	}
	contents := data[5]
	if contents < contentsCubeSolve || contents > contentsSessionList {
		return 0, nil, &CorruptError{Kind: kind, Reason: "unknown contents"}
	}
	length := binary.LittleEndian.Uint32(data[6:10])
	if int(length) != len(data)-10 {
		return 0, nil, &CorruptError{Kind: kind, Reason: "payload length mismatch"}
	}
	return contents, data[10:], nil
}

func encodeSyncRecord(rec SyncRecord) []byte {
	var w fieldWriter
	w.stringField(syncFieldID, rec.ID)
	w.uint64Field(syncFieldTime, uint64(rec.Date))
	w.stringField(syncFieldSync, rec.Sync)
	return w.buf
}

// decodeSyncRecord fills rec from a nested sync payload and reports
// whether an ID was present.
func decodeSyncRecord(kind string, data []byte, rec *SyncRecord) (bool, error) {
	r := fieldReader{kind: kind, data: data}
	idSeen := false
	for {
		tag, field, ok, err := r.next()
		if err != nil {
			return false, err
		}
		if !ok {
			return idSeen, nil
		}
		switch tag {
		case syncFieldID:
			rec.ID = string(field)
			idSeen = true
		case syncFieldTime:
			if len(field) != 8 {
				return false, r.corrupt("bad sync time")
			}
			rec.Date = int64(binary.LittleEndian.Uint64(field))
		case syncFieldSync:
			rec.Sync = string(field)
		}
	}
}

func (c *codec) encodeSolve(s *Solve) []byte {
	var w fieldWriter

	scramble := make([]byte, len(s.Scramble))
	for i, m := range s.Scramble {
		scramble[i] = m.Packed()
	}
	w.field(solveFieldScramble, scramble)
	w.uint64Field(solveFieldCreated, uint64(s.Created))
	w.boolField(solveFieldOK, s.OK)
	w.uint32Field(solveFieldTime, s.Time)
	w.uint32Field(solveFieldPenalty, s.Penalty)
	w.stringField(solveFieldDevice, s.Device)

	moves := make([]byte, 0, 5*len(s.Moves))
	for _, tm := range s.Moves {
		moves = append(moves, tm.Move.Packed())
		moves = binary.LittleEndian.AppendUint32(moves, tm.Milliseconds)
	}
	w.field(solveFieldMoves, moves)

	splits := make([]byte, 0, 32)
	splits = binary.LittleEndian.AppendUint32(splits, s.CrossTime)
	for _, t := range s.F2LPairTimes {
		splits = binary.LittleEndian.AppendUint32(splits, t)
	}
	splits = binary.LittleEndian.AppendUint32(splits, s.OLLCrossTime)
	splits = binary.LittleEndian.AppendUint32(splits, s.OLLFinishTime)
	splits = binary.LittleEndian.AppendUint32(splits, s.PLLCornerTime)
	w.field(solveFieldSplits, splits)

	w.field(solveFieldUpdate, encodeSyncRecord(s.Update))

	return encodeEnvelope(contentsCubeSolve, w.buf)
}

// decodeSolve fills s from a serialized solve record. A missing sync
// record gets a fresh ID and the current date. The dirty flag is cleared
// regardless of the stored state.
func (c *codec) decodeSolve(data []byte, s *Solve) error {
	const kind = "solve"
	contents, payload, err := decodeEnvelope(kind, data)
	if err != nil {
		return err
	}
	if contents != contentsCubeSolve {
		return &CorruptError{Kind: kind, Reason: "data does not contain a solve"}
	}

	r := fieldReader{kind: kind, data: payload}
	updateSeen := false
	updateIDSeen := false
	for {
		tag, field, ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch tag {
		case solveFieldScramble:
			s.Scramble = s.Scramble[:0]
			for _, b := range field {
				m, err := UnpackMove(b)
				if err != nil {
					return r.corrupt("invalid scramble move")
				}
				s.Scramble = append(s.Scramble, m)
			}
		case solveFieldCreated:
			if len(field) != 8 {
				return r.corrupt("bad created time")
			}
			s.Created = int64(binary.LittleEndian.Uint64(field))
		case solveFieldOK:
			if len(field) != 1 {
				return r.corrupt("bad ok flag")
			}
			s.OK = field[0] != 0
		case solveFieldTime:
			if len(field) != 4 {
				return r.corrupt("bad time")
			}
			s.Time = binary.LittleEndian.Uint32(field)
		case solveFieldPenalty:
			if len(field) != 4 {
				return r.corrupt("bad penalty")
			}
			s.Penalty = binary.LittleEndian.Uint32(field)
		case solveFieldDevice:
			s.Device = string(field)
		case solveFieldMoves:
			if len(field)%5 != 0 {
				return r.corrupt("bad move stream")
			}
			s.Moves = s.Moves[:0]
			for i := 0; i < len(field); i += 5 {
				m, err := UnpackMove(field[i])
				if err != nil {
					return r.corrupt("invalid timed move")
				}
				s.Moves = append(s.Moves, TimedMove{
					Move:         m,
					Milliseconds: binary.LittleEndian.Uint32(field[i+1 : i+5]),
				})
			}
		case solveFieldSplits:
			if len(field) != 32 {
				return r.corrupt("bad split times")
			}
			s.CrossTime = binary.LittleEndian.Uint32(field[0:4])
			for i := range s.F2LPairTimes {
				s.F2LPairTimes[i] = binary.LittleEndian.Uint32(field[4+4*i : 8+4*i])
			}
			s.OLLCrossTime = binary.LittleEndian.Uint32(field[20:24])
			s.OLLFinishTime = binary.LittleEndian.Uint32(field[24:28])
			s.PLLCornerTime = binary.LittleEndian.Uint32(field[28:32])
		case solveFieldUpdate:
			updateSeen = true
			idSeen, err := decodeSyncRecord(kind, field, &s.Update)
			if err != nil {
				return err
			}
			updateIDSeen = idSeen
		}
	}

	if !updateSeen {
		s.Update.ID = c.ids.GenerateID()
		s.Update.Date = c.clock.Now()
	} else if !updateIDSeen {
		s.Update.ID = c.ids.GenerateID()
	}
	s.Dirty = false
	return nil
}

func (c *codec) encodeSession(s *Session) []byte {
	var w fieldWriter
	w.uint32Field(sessionFieldType, uint32(s.Type))
	w.stringField(sessionFieldName, s.Name)
	w.field(sessionFieldUpdate, encodeSyncRecord(s.Update))
	return encodeEnvelope(contentsSession, w.buf)
}

func (c *codec) decodeSession(data []byte, s *Session) error {
	const kind = "session"
	contents, payload, err := decodeEnvelope(kind, data)
	if err != nil {
		return err
	}
	if contents != contentsSession {
		return &CorruptError{Kind: kind, Reason: "data does not contain a session"}
	}

	r := fieldReader{kind: kind, data: payload}
	updateSeen := false
	updateIDSeen := false
	for {
		tag, field, ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch tag {
		case sessionFieldType:
			if len(field) != 4 {
				return r.corrupt("bad solve type")
			}
			s.Type = SolveType(binary.LittleEndian.Uint32(field))
		case sessionFieldName:
			s.Name = string(field)
		case sessionFieldUpdate:
			updateSeen = true
			idSeen, err := decodeSyncRecord(kind, field, &s.Update)
			if err != nil {
				return err
			}
			updateIDSeen = idSeen
		}
	}

	if !updateSeen {
		s.Update.ID = c.ids.GenerateID()
		s.Update.Date = c.clock.Now()
	} else if !updateIDSeen {
		s.Update.ID = c.ids.GenerateID()
	}
	s.Dirty = false
	return nil
}

func encodeIDList(contents byte, ids []string) []byte {
	var w fieldWriter
	for _, id := range ids {
		w.stringField(listFieldID, id)
	}
	return encodeEnvelope(contents, w.buf)
}

func decodeIDList(kind string, contents byte, data []byte) ([]string, error) {
	actual, payload, err := decodeEnvelope(kind, data)
	if err != nil {
		return nil, err
	}
	if actual != contents {
		return nil, &CorruptError{Kind: kind, Reason: "data does not contain an id list"}
	}

	r := fieldReader{kind: kind, data: payload}
	var list []string
	for {
		tag, field, ok, err := r.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return list, nil
		}
		if tag == listFieldID {
			list = append(list, string(field))
		}
	}
}

func (c *codec) encodeSolveList(session *Session) []byte {
	ids := make([]string, len(session.Solves))
	for i := range session.Solves {
		ids[i] = session.Solves[i].ID
	}
	return encodeIDList(contentsSolveList, ids)
}

func (c *codec) decodeSolveList(data []byte) ([]string, error) {
	return decodeIDList("solve list", contentsSolveList, data)
}

func (c *codec) encodeSessionList(sessions []*Session) []byte {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return encodeIDList(contentsSessionList, ids)
}

func (c *codec) decodeSessionList(data []byte) ([]string, error) {
	return decodeIDList("session list", contentsSessionList, data)
}
