package seederr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/frantjc/seed/internal/seederr"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	var (
		base  = errors.New("base")
		usage = seederr.Usage(base)
	)

	assert.Equal(t, 0, seederr.ExitCode(nil))
	assert.Equal(t, seederr.ExitCodeFatal, seederr.ExitCode(base))
	assert.Equal(t, seederr.ExitCodeUsage, seederr.ExitCode(usage))
	assert.Equal(t, seederr.ExitCodeUsage, seederr.ExitCode(fmt.Errorf("wrapped: %w", usage)))
	assert.Equal(t, seederr.ExitCodeFatal, seederr.ExitCode(seederr.ExitCodeError(base, 300)))
	assert.ErrorIs(t, usage, base)
	assert.Equal(t, "base", usage.Error())
	assert.NoError(t, seederr.Fatal(nil))
}
