// file: internal/metasearch/telemetry.go
// version: 1.0.0
// guid: 7b4e9d2a-3c68-4f15-8a9e-6d0b5c2f8e37

package metasearch

import "time"

// Source call statuses recorded in SourceMetric.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// SourceMetric is the per-source telemetry attached to each search
// answer. Diagnostic only: a failed source shows up here and nowhere
// else, it never blocks the primary results.
type SourceMetric struct {
	Source   string        `json:"source"`
	Duration time.Duration `json:"duration"`
	Status   string        `json:"status"`
	Results  int           `json:"results"`
	Err      string        `json:"error,omitempty"`
}

// OK reports whether the call completed without failure. A source that
// answered "no record" is still OK.
func (m SourceMetric) OK() bool {
	return m.Status == StatusSuccess
}
