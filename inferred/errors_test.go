package inferred

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	var errs *Errors
	assert.False(t, errs.HasError())
	assert.Empty(t, errs.Messages())

	errs = errs.With("first")
	errs = errs.Merge(errorf("second %s", U8))
	errs = errs.Merge(nil)
	assert.True(t, errs.HasError())
	assert.Equal(t, []string{"first", "second u8"}, errs.Messages())
	assert.EqualError(t, errs, "first; second u8")

	value := errs.LogValue()
	assert.Equal(t, slog.KindGroup, value.Kind())
	assert.Len(t, value.Group(), 2)
}
