package safelite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	logger := log.TestingLogger()
	ctx := WithLogger(bg, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	ctx = WithLogInfo(ctx, "module", "test")
	assert.NotNil(t, GetLogger(ctx))
}

func TestContextSender(t *testing.T) {
	bg := context.Background()
	_, ok := GetSender(bg)
	assert.False(t, ok)

	sender := MustParseAddress("0x7e5f4552091a69125d5dfcb7b8c2659029395bdf")
	got, ok := GetSender(WithSender(bg, sender))
	assert.True(t, ok)
	assert.Equal(t, sender, got)
}
