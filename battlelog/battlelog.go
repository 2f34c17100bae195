// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package battlelog renders a battlestate.State's event log to the
// pipe-delimited wire format (§6): one event per line, fields separated by
// "|", matching the reference log format consumers already parse.
package battlelog

import (
	"io"
	"strings"

	"github.com/Ukawamochi/Pokemon-Champions/battlestate"
)

// Render joins every logged event into the newline-terminated wire-format
// text a replay viewer or compatibility consumer expects.
func Render(events []battlestate.Event) string {
	var b strings.Builder
	for _, ev := range events {
		b.WriteString(ev.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Write streams the log to w event by event (one write for each event's
// text, one for its newline) so a caller can back it with a buffered writer
// without Render materializing the whole string first.
func Write(w io.Writer, events []battlestate.Event) error {
	for _, ev := range events {
		if _, err := io.WriteString(w, ev.Text); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Lines returns the log as a slice of wire-format lines without the
// trailing newline, convenient for line-by-line diffing in tests.
func Lines(events []battlestate.Event) []string {
	lines := make([]string, len(events))
	for i, ev := range events {
		lines[i] = ev.Text
	}
	return lines
}
