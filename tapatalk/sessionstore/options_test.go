package sessionstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyOpts(t *testing.T) {
	// just make sure we don't panic on nil options
	assert := assert.New(t)
	anonymousOpts := struct {
		Names []string
	}{
		nil,
	}
	ApplyOpts(anonymousOpts, nil)

	// nil Options are ignored, and the ones around them still apply
	opts := redisDefaults()
	ApplyOpts(&opts, nil, WithKeyPrefix("login:"), nil)
	assert.Equal("login:", opts.withKeyPrefix)
}

func Test_WithKeyPrefix(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	opts := getRedisOpts(WithKeyPrefix("login:"))
	testOpts := redisDefaults()
	testOpts.withKeyPrefix = "login:"
	assert.Equal(opts, testOpts)

	assert.Equal(DefaultRedisKeyPrefix, getRedisOpts().withKeyPrefix)
}
