package tuitest

import (
	"bytes"
	"io"
)

// Terminal queries a TUI may send on startup, with canned replies so the
// program does not stall waiting for a real terminal.
var terminalReplies = []struct {
	query []byte
	reply []byte
}{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:0000/0000/0000\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:ffff/ffff/ffff\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:ffff/ffff/ffff\x1b\\")},
}

const (
	responderLimit = 256
	responderTail  = 64
)

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, responderLimit)}
}

// Process answers every complete query in chunk. A short tail is kept so a
// query split across reads is still seen.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerOne() {
	}
	if len(tr.buf) > responderLimit {
		tr.buf = append([]byte(nil), tr.buf[len(tr.buf)-responderTail:]...)
	}
}

func (tr *terminalResponder) answerOne() bool {
	for _, r := range terminalReplies {
		idx := bytes.Index(tr.buf, r.query)
		if idx < 0 {
			continue
		}
		tr.buf = tr.buf[idx+len(r.query):]
		_, _ = tr.w.Write(r.reply)
		return true
	}
	return false
}
