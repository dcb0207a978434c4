package output

import (
	"github.com/tmsantos/bigdiff/pkg/models"
)

// Formatter defines the interface for rendering a finished run.
// Implementations include human-readable and JSON formatters.
type Formatter interface {
	// Complete renders the final report.
	Complete(report *models.Report) error

	// Error reports a fatal error.
	Error(err error) error

	// Name returns the formatter name.
	Name() string
}
