// Package output renders engine results for humans and pipelines:
// newline-delimited JSON per result, and a plain-text stats summary.
package output

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// JSONLWriter emits one JSON object per ProbeResult, newline
// delimited. Emit is called from the engine's coordinator only, so
// writes are naturally serialized.
type JSONLWriter struct {
	w io.Writer
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{w: w}
}

func (j *JSONLWriter) Emit(r domain.ProbeResult) error {
	b, err := sonic.Marshal(r)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = j.w.Write(b)
	return err
}
