// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package textdiff provides functions to compare text line by line, including lines that moved.
package textdiff

import (
	"bytes"
	"strconv"
	"strings"

	"znkr.io/listdiff"
	"znkr.io/listdiff/internal/byteview"
	"znkr.io/listdiff/internal/config"
	"znkr.io/listdiff/textdiff/color"
)

const missingNewline = "\n\\ No newline at end of file\n"

const reset = "\033[0m"

// Changes compares the lines in x and y and returns the changes necessary to convert from one to
// the other. Each element of the result is a complete line including its line terminator. A final
// line without a terminator is marked with "\ No newline at end of file" so that it's never equal
// to a terminated line.
//
// Lines are identified by their content, consequently, Changes never reports updates.
//
// The following option is supported: [listdiff.DisableMoves]
func Changes(x, y string, opts ...listdiff.Option) []listdiff.Change[string] {
	return changes(x, y, opts)
}

// ChangesBytes compares the lines in x and y and returns the changes necessary to convert from one
// to the other. See [Changes] for details. The lines in the result share memory with x and y.
//
// The following option is supported: [listdiff.DisableMoves]
func ChangesBytes(x, y []byte, opts ...listdiff.Option) []listdiff.Change[[]byte] {
	return changes(x, y, opts)
}

func changes[T string | []byte](x, y T, opts []listdiff.Option) []listdiff.Change[T] {
	cs := listdiff.Changes(lines[T](byteview.From(x)), lines[T](byteview.From(y)), opts...)
	if len(cs) == 0 {
		return nil
	}
	out := make([]listdiff.Change[T], len(cs))
	for i, c := range cs {
		out[i] = listdiff.Change[T]{Op: c.Op, From: c.From, To: c.To, Item: byteview.To[T](c.Item)}
	}
	return out
}

// Format compares the lines in x and y and returns the changes as text, one line per change:
//
//	-3:deleted line      line 3 of x was deleted
//	+5:inserted line     line 5 of y was inserted
//	2>7:moved line       line 2 of x moved to line 7 of y
//
// Line numbers start at 1. The output is empty if x and y are equal. Colors are only used if
// they are configured with options from [color].
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Format(x, y string, opts ...color.Option) string {
	var cc config.ColorConfig
	for _, opt := range opts {
		opt(&cc)
	}

	var b bytes.Buffer
	for _, c := range Changes(x, y) {
		switch c.Op {
		case listdiff.Delete:
			writeLine(&b, cc.Delete, "-", cc.Position, strconv.Itoa(c.From+1), c.Item)
		case listdiff.Insert:
			writeLine(&b, cc.Insert, "+", cc.Position, strconv.Itoa(c.To+1), c.Item)
		case listdiff.Move:
			writeLine(&b, cc.Move, "", cc.Position, strconv.Itoa(c.From+1)+">"+strconv.Itoa(c.To+1), c.Item)
		default:
			panic("never reached")
		}
	}
	return b.String()
}

func writeLine(b *bytes.Buffer, code, prefix, poscode, pos, line string) {
	if code != "" {
		b.WriteString(code)
	}
	b.WriteString(prefix)
	if poscode != "" {
		b.WriteString(poscode)
		b.WriteString(pos)
		b.WriteString(reset)
		if code != "" {
			b.WriteString(code)
		}
	} else {
		b.WriteString(pos)
	}
	b.WriteByte(':')
	if code != "" {
		b.WriteString(strings.TrimSuffix(line, "\n"))
		b.WriteString(reset)
		b.WriteByte('\n')
		return
	}
	b.WriteString(line)
}

// lines splits v into lines and appends the missing newline marker to an unterminated last
// line. The marker is the only part that's copied.
func lines[T string | []byte](v byteview.ByteView) []byteview.ByteView {
	l, missing := byteview.SplitLines(v)
	if missing >= 0 {
		var b byteview.Builder[T]
		b.Grow(l[missing].Len() + len(missingNewline))
		b.WriteByteView(l[missing])
		b.WriteString(missingNewline)
		l[missing] = byteview.From(b.Build())
	}
	return l
}
