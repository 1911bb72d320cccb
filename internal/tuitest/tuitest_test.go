package tuitest

import (
	"bytes"
	"testing"
)

func TestStrokeEncodesX10Reports(t *testing.T) {
	got := Stroke([2]int{0, 0}, [2]int{4, 2})
	want := []byte{
		0x1b, '[', 'M', 32, 33, 33,
		0x1b, '[', 'M', 64, 37, 35,
		0x1b, '[', 'M', 35, 37, 35,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("unexpected encoding\nwant %v\ngot  %v", want, got)
	}
	if Stroke() != nil {
		t.Fatal("empty stroke should encode to nothing")
	}
}

func TestParseFramesSplitsOnClear(t *testing.T) {
	raw := []byte("\x1b[2Jfirst\r\n\x1b[2J\x1b[Hsecond  \r\n\r\n")
	rec := &Recording{Raw: raw, Frames: parseFrames(raw)}
	if len(rec.Frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(rec.Frames))
	}
	last, ok := rec.FinalFrame()
	if !ok || last.Plain != "second" {
		t.Fatalf("unexpected final frame %q", last.Plain)
	}
	if f, ok := rec.LastContaining("first"); !ok || f.Index != 0 {
		t.Fatalf("expected to find the first frame, got %+v", f)
	}
	if !rec.Contains("second") || rec.Contains("third") {
		t.Fatal("Contains should search the plain stream")
	}
}

func TestResponderAnswersSplitQuery(t *testing.T) {
	var out bytes.Buffer
	tr := newTerminalResponder(&out)
	tr.Process([]byte("hello \x1b[6"))
	if out.Len() != 0 {
		t.Fatal("partial query should not be answered")
	}
	tr.Process([]byte("n world"))
	if out.String() != "\x1b[1;1R" {
		t.Fatalf("unexpected reply %q", out.String())
	}
}
