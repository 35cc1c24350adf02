package app

import (
	"bytes"
	"io"
)

// prefixWriter tags every complete line with the project name so output from
// concurrent invocations stays attributable. A trailing partial line is
// written on Close.
type prefixWriter struct {
	w      io.Writer
	prefix []byte
	buf    []byte
}

func newPrefixWriter(w io.Writer, project string) *prefixWriter {
	return &prefixWriter{w: w, prefix: []byte(project + " | ")}
}

func (p *prefixWriter) Write(b []byte) (int, error) {
	p.buf = append(p.buf, b...)

	for {
		i := bytes.IndexByte(p.buf, '\n')
		if i < 0 {
			break
		}
		if err := p.writeLine(p.buf[:i]); err != nil {
			return 0, err
		}
		p.buf = p.buf[i+1:]
	}

	return len(b), nil
}

// Close flushes any buffered partial line.
func (p *prefixWriter) Close() error {
	if len(p.buf) == 0 {
		return nil
	}
	err := p.writeLine(p.buf)
	p.buf = nil
	return err
}

func (p *prefixWriter) writeLine(line []byte) error {
	// PTYs terminate lines with \r\n.
	line = bytes.TrimSuffix(line, []byte("\r"))

	out := make([]byte, 0, len(p.prefix)+len(line)+1)
	out = append(out, p.prefix...)
	out = append(out, line...)
	out = append(out, '\n')
	_, err := p.w.Write(out)
	return err
}
