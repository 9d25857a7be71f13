package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	ctx := base.WithContext(context.Background())

	ctx = WithLogger(ctx, map[string]interface{}{"request_id": "abc"})
	InfoLog(ctx, "imported %d rows", 3)
	ErrorLog(ctx, "save failed", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"request_id":"abc"`)
	assert.Contains(t, out, `"message":"imported 3 rows"`)
	assert.Contains(t, out, `"error":"boom"`)
}
