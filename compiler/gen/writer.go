package gen

import "strings"

// Writer accumulates generated code line by line.
//
// Each line may reference values set with SetValue as {{KEY}}; they are
// substituted when the line is added. A line ending in a backslash is
// written without its terminating newline, so the next line continues it.
type Writer struct {
	buf    strings.Builder
	values map[string]string
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{values: make(map[string]string)}
}

// SetValue binds key for substitution in subsequent lines.
func (w *Writer) SetValue(key, value string) {
	w.values[key] = value
}

// Line appends a line of code.
func (w *Writer) Line(text string) {
	text = w.expand(text)
	if strings.HasSuffix(text, `\`) {
		w.buf.WriteString(text[:len(text)-1])
		return
	}
	w.buf.WriteString(text)
	w.buf.WriteByte('\n')
}

// Raw appends text as one line, verbatim: no substitution and no
// continuation. Schema provided text such as doc comments goes here.
func (w *Writer) Raw(text string) {
	w.buf.WriteString(text)
	w.buf.WriteByte('\n')
}

// Lines appends several lines of code.
func (w *Writer) Lines(lines ...string) {
	for _, l := range lines {
		w.Line(l)
	}
}

// String returns the accumulated code.
func (w *Writer) String() string {
	return w.buf.String()
}

// Reset discards the accumulated code and all values.
func (w *Writer) Reset() {
	w.buf.Reset()
	clear(w.values)
}

// expand replaces every {{KEY}} with its bound value. Unknown keys are
// left untouched.
func (w *Writer) expand(text string) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	var b strings.Builder
	for {
		start := strings.Index(text, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(text[start+2:], "}}")
		if end < 0 {
			break
		}
		key := text[start+2 : start+2+end]
		b.WriteString(text[:start])
		if v, ok := w.values[key]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(text[start : start+4+end])
		}
		text = text[start+4+end:]
	}
	b.WriteString(text)
	return b.String()
}
