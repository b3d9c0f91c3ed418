package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHuman(t *testing.T) {
	var buf bytes.Buffer
	ctx := Human(context.Background(), &buf, false)
	Info(ctx, "quiet advisory")
	Warn(ctx, "loud warning")
	Sync(ctx)
	assert.NotContains(t, buf.String(), "quiet advisory")
	assert.Contains(t, buf.String(), "loud warning")

	buf.Reset()
	ctx = Named(Human(context.Background(), &buf, true), "weights")
	Debug(ctx, "debug detail")
	Info(ctx, "advisory")
	Sync(ctx)
	assert.Contains(t, buf.String(), "debug detail")
	assert.Contains(t, buf.String(), "advisory")
	assert.Contains(t, buf.String(), "weights")
}

func TestMissingLoggerDiscards(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		Info(ctx, "nowhere")
		Error(ctx, "nowhere")
		Sync(ctx)
	})
}
