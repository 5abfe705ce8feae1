package stream

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func feedAll(d *Decoder, chunks ...string) []string {
	var records []string
	for _, c := range chunks {
		records = append(records, d.Feed([]byte(c))...)
	}
	return records
}

func TestFeedSingleChunk(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	got := d.Feed([]byte("data: {\"a\":1}\n\ndata: {\"b\":2}\n\n"))
	want := []string{`data: {"a":1}`, `data: {"b":2}`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFeedAnyChunkingYieldsSameRecords(t *testing.T) {
	t.Parallel()

	// Includes a multi-byte payload so splits can land mid-character.
	reference := "data: {\"text\":\"héllo\"}\n\ndata: {\"text\":\"wörld 🌍\"}\n\ndata: {}\n\n"

	whole := NewDecoder()
	want := whole.Feed([]byte(reference))
	if len(want) != 3 {
		t.Fatalf("reference stream produced %d records, want 3", len(want))
	}

	raw := []byte(reference)
	for size := 1; size <= len(raw); size++ {
		d := NewDecoder()
		var got []string
		for i := 0; i < len(raw); i += size {
			end := i + size
			if end > len(raw) {
				end = len(raw)
			}
			got = append(got, d.Feed(raw[i:end])...)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("chunk size %d: got %q, want %q", size, got, want)
		}
	}
}

func TestFeedDelimiterSplitAcrossChunks(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	if got := d.Feed([]byte("data: one\n")); got != nil {
		t.Fatalf("partial delimiter emitted records: %q", got)
	}
	got := d.Feed([]byte("\ndata: two\n\n"))
	want := []string{"data: one", "data: two"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFeedNoDelimiterOnlyBuffers(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	if got := feedAll(d, "data: {\"chu", "nk\":{\"co"); got != nil {
		t.Fatalf("expected no records, got %q", got)
	}
	if d.Pending() == 0 {
		t.Fatal("expected buffered bytes")
	}
}

func TestFeedEmptyChunkIsNoop(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	d.Feed([]byte("data: partial"))
	before := d.Pending()
	if got := d.Feed(nil); got != nil {
		t.Fatalf("empty chunk emitted records: %q", got)
	}
	if d.Pending() != before {
		t.Fatalf("empty chunk changed buffer: %d -> %d", before, d.Pending())
	}
}

func TestFinishDiscardsUnterminatedTail(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	got := d.Feed([]byte("data: whole\n\ndata: cut off mid-rec"))
	if want := []string{"data: whole"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	d.Finish()
	if d.Pending() != 0 {
		t.Fatalf("buffer not cleared after Finish: %d bytes", d.Pending())
	}
	if got := d.Feed([]byte("\n\n")); got != nil {
		t.Fatalf("Feed after Finish emitted records: %q", got)
	}
}

func TestFeedEmptyRecords(t *testing.T) {
	t.Parallel()

	// Keep-alive framing: consecutive delimiters produce empty records,
	// which the interpreter later drops.
	d := NewDecoder()
	got := d.Feed([]byte("\n\n\n\ndata: x\n\n"))
	want := []string{"", "", "data: x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFeedManyRecordsStaysBounded(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	for i := 0; i < 10000; i++ {
		rec := fmt.Sprintf("data: {\"n\":%d}\n\n", i)
		got := d.Feed([]byte(rec))
		if len(got) != 1 || got[0] != strings.TrimSuffix(rec, "\n\n") {
			t.Fatalf("record %d: got %q", i, got)
		}
		if d.Pending() != 0 {
			t.Fatalf("record %d: %d bytes left buffered", i, d.Pending())
		}
	}
}
