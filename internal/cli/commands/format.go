package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/conduit-lang/sugar/runtime/metadata"
)

// view is command output. Table output calls renderTable, JSON output encodes
// the view itself.
type view interface {
	renderTable(w io.Writer, noColor bool)
}

func (e *env) render(w io.Writer, v view) error {
	if strings.EqualFold(e.cfg.Output.Format, "json") {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	}
	v.renderTable(w, e.noColor())
	return nil
}

// describeAttribute renders an attribute as one line of text.
func describeAttribute(attr metadata.Attribute) string {
	switch a := attr.(type) {
	case metadata.TaskQueue:
		return a.Name
	case metadata.RetryPolicy:
		return describeRetryPolicy(a)
	case fmt.Stringer:
		return a.String()
	default:
		return fmt.Sprintf("%+v", attr)
	}
}

func describeRetryPolicy(p metadata.RetryPolicy) string {
	var parts []string
	if p.Attempts != 0 {
		parts = append(parts, "attempts="+strconv.Itoa(p.Attempts))
	}
	if p.InitInterval != 0 {
		parts = append(parts, "init="+p.InitInterval.String())
	}
	if p.MaxInterval != 0 {
		parts = append(parts, "max="+p.MaxInterval.String())
	}
	if p.Backoff != 0 {
		parts = append(parts, "backoff="+strconv.FormatFloat(p.Backoff, 'g', -1, 64))
	}
	if len(p.NonRetryables) > 0 {
		parts = append(parts, "non_retryable="+strings.Join(p.NonRetryables, ","))
	}
	if len(parts) == 0 {
		return "(defaults)"
	}
	return strings.Join(parts, " ")
}
