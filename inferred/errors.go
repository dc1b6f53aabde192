package inferred

import (
	"fmt"
	"log/slog"
	"strings"
)

// Errors is the error returned by unification. It carries plain text
// diagnostics; callers attach source positions before reporting them.
type Errors struct {
	msgs []string
}

var _ error = (*Errors)(nil)

func errorf(format string, args ...any) *Errors {
	return (*Errors)(nil).With(fmt.Sprintf(format, args...))
}

func (r *Errors) With(msg ...string) *Errors {
	if r == nil {
		return &Errors{msgs: msg}
	}
	r.msgs = append(r.msgs, msg...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil || len(err.msgs) == 0 {
		return r
	}
	return r.With(err.msgs...)
}

// Messages returns the diagnostics in the order they were found.
func (r *Errors) Messages() []string {
	if r == nil {
		return nil
	}
	return r.msgs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.msgs) > 0
}

func (r *Errors) Error() string {
	return strings.Join(r.Messages(), "; ")
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, msg := range r.Messages() {
		vals = append(vals, slog.String(fmt.Sprint("e", i), msg))
	}
	return slog.GroupValue(vals...)
}
