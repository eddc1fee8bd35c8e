package pipeline

import (
	"bytes"

	"github.com/matzehuels/flowbasis/pkg/errors"
	"github.com/matzehuels/flowbasis/pkg/report"
)

// Render encodes the report of res. With details set, the text format also
// lists the repeat, singular and discarded counters.
func Render(res *Result, format string, details bool) ([]byte, error) {
	if format == "" {
		format = report.FormatText
	}
	if err := errors.ValidateFormat(format, report.Formats...); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	var err error
	if format == report.FormatText {
		err = report.WriteText(&buf, res.Report, details)
	} else {
		err = report.Write(&buf, res.Report, format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
