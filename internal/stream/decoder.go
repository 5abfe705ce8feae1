// Package stream reassembles and interprets the tutor service's reply
// stream: delimiter-framed records carrying JSON events, delivered in
// arbitrarily sized chunks.
package stream

import "bytes"

// recordSep is the framing delimiter: each record ends with a blank line.
const recordSep = "\n\n"

// Decoder turns a sequence of byte chunks into whole records, in
// delivery order. Chunk boundaries carry no meaning: a delimiter, a
// JSON payload, or a multi-byte character may be split across any two
// chunks. The decoder buffers undelimited bytes between calls, so a
// split never surfaces in an emitted record.
type Decoder struct {
	buf      []byte
	scanFrom int // index where the next delimiter search resumes
	finished bool
}

// NewDecoder returns a Decoder with an empty buffer.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends a chunk and returns every complete record it unlocked,
// oldest first. An empty chunk is a no-op. Records are returned without
// their trailing delimiter.
func (d *Decoder) Feed(chunk []byte) []string {
	if d.finished || len(chunk) == 0 {
		return nil
	}
	d.buf = append(d.buf, chunk...)

	var records []string
	start := 0
	for {
		i := bytes.Index(d.buf[d.scanFrom:], []byte(recordSep))
		if i < 0 {
			break
		}
		end := d.scanFrom + i
		records = append(records, string(d.buf[start:end]))
		start = end + len(recordSep)
		d.scanFrom = start
	}

	// Compact the consumed prefix so the buffer stays bounded by one
	// partial record. The next search may only skip bytes that cannot
	// hide the front of a split delimiter.
	if start > 0 {
		n := copy(d.buf, d.buf[start:])
		d.buf = d.buf[:n]
	}
	d.scanFrom = len(d.buf) - (len(recordSep) - 1)
	if d.scanFrom < 0 {
		d.scanFrom = 0
	}
	return records
}

// Finish marks end-of-stream. Any undelimited trailing text is
// discarded, never emitted: a well-behaved server terminates its final
// record with the delimiter, so a bare tail is a truncation artifact.
// Further Feed calls are no-ops.
func (d *Decoder) Finish() {
	d.finished = true
	d.buf = nil
	d.scanFrom = 0
}

// Pending reports how many buffered bytes are awaiting a delimiter.
// Useful for logging what Finish is about to drop.
func (d *Decoder) Pending() int {
	return len(d.buf)
}
