package trace

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

type vcdVar struct {
	id    string
	name  string
	width int
}

// VCDWriter writes samples as a value change dump.
//
// Variables are declared from the samples of the first cycle. Signals that
// first appear in a later cycle are dropped and reported by Flush.
type VCDWriter struct {
	w         *bufio.Writer
	closer    io.Closer
	timescale string
	scale     float64

	pending  []Sample
	vars     map[string]*vcdVar
	header   bool
	first    uint64
	lastTime int64
	dropped  int
	err      error
}

// NewVCDWriter creates a writer with a timescale of 1 ps. If w is also an
// io.Closer, Close closes it.
func NewVCDWriter(w io.Writer) *VCDWriter {
	vw := &VCDWriter{
		w:         bufio.NewWriter(w),
		timescale: "1ps",
		scale:     1e12,
		vars:      make(map[string]*vcdVar),
		lastTime:  -1,
	}

	if c, ok := w.(io.Closer); ok {
		vw.closer = c
	}

	return vw
}

// Record buffers the samples of the first cycle and writes the changes of
// later cycles.
func (w *VCDWriter) Record(s Sample) {
	if w.err != nil {
		return
	}

	if !w.header {
		if len(w.pending) == 0 || s.Cycle == w.first {
			w.first = s.Cycle
			w.pending = append(w.pending, s)

			return
		}

		w.writeHeader()
	}

	w.writeSample(s)
}

func (w *VCDWriter) writeHeader() {
	names := make([]string, 0, len(w.pending))
	for _, s := range w.pending {
		if _, ok := w.vars[s.Name]; ok {
			continue
		}

		w.vars[s.Name] = &vcdVar{
			id:    vcdID(len(names)),
			name:  s.Name,
			width: max(s.Width, 1),
		}
		names = append(names, s.Name)
	}

	sort.Strings(names)

	w.printf("$version ambabridge $end\n")
	w.printf("$timescale %s $end\n", w.timescale)

	var scope []string
	for _, name := range names {
		parts := strings.Split(name, ".")
		dirs := parts[:len(parts)-1]

		common := 0
		for common < len(scope) && common < len(dirs) &&
			scope[common] == dirs[common] {
			common++
		}

		for i := len(scope); i > common; i-- {
			w.printf("$upscope $end\n")
		}

		for _, d := range dirs[common:] {
			w.printf("$scope module %s $end\n", d)
		}

		scope = dirs

		v := w.vars[name]
		w.printf("$var wire %d %s %s $end\n", v.width, v.id, parts[len(parts)-1])
	}

	for range scope {
		w.printf("$upscope $end\n")
	}

	w.printf("$enddefinitions $end\n")

	w.header = true
	pending := w.pending
	w.pending = nil

	for _, s := range pending {
		w.writeSample(s)
	}
}

func (w *VCDWriter) writeSample(s Sample) {
	v, ok := w.vars[s.Name]
	if !ok {
		w.dropped++
		return
	}

	t := int64(math.Round(float64(s.Time) * w.scale))
	if t != w.lastTime {
		w.printf("#%d\n", t)
		w.lastTime = t
	}

	if v.width == 1 {
		w.printf("%d%s\n", s.Value&1, v.id)
		return
	}

	w.printf("b%b %s\n", s.Value, v.id)
}

func (w *VCDWriter) printf(format string, args ...any) {
	if w.err != nil {
		return
	}

	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// Flush writes everything buffered. A dump that only saw one cycle gets its
// header written here.
func (w *VCDWriter) Flush() error {
	if !w.header && len(w.pending) > 0 {
		w.writeHeader()
	}

	if w.err != nil {
		return fmt.Errorf("write vcd: %w", w.err)
	}

	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("write vcd: %w", err)
	}

	if w.dropped > 0 {
		return fmt.Errorf("write vcd: %d samples of undeclared signals dropped",
			w.dropped)
	}

	return nil
}

// Close flushes the dump and closes the underlying writer.
func (w *VCDWriter) Close() error {
	err := w.Flush()

	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close vcd: %w", cerr)
		}
	}

	return err
}

// vcdID returns the short identifier of the n-th variable, using the
// printable characters '!' to '~'.
func vcdID(n int) string {
	const first, count = '!', '~' - '!' + 1

	var b []byte
	for {
		b = append(b, byte(first+n%count))
		n /= count

		if n == 0 {
			break
		}

		n--
	}

	return string(b)
}
