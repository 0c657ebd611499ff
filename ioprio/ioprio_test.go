//go:build linux

package ioprio_test

import (
	"testing"

	"github.com/AdguardTeam/sysunix/ioprio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestGetSet(t *testing.T) {
	class, level, err := ioprio.Get(ioprio.Process(0))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, level, ioprio.LevelMin)
	assert.LessOrEqual(t, level, ioprio.LevelMax)

	if class == ioprio.ClassNone {
		class, level = ioprio.ClassBE, 4
	}

	require.NoError(t, ioprio.Set(ioprio.Process(0), class, level))

	gotClass, gotLevel, err := ioprio.Get(ioprio.Process(0))
	require.NoError(t, err)

	assert.Equal(t, class, gotClass)
	assert.Equal(t, level, gotLevel)
}

func TestSet_badLevel(t *testing.T) {
	err := ioprio.Set(ioprio.Process(0), ioprio.ClassBE, 8)
	assert.ErrorIs(t, err, unix.EINVAL)

	err = ioprio.Set(ioprio.Process(0), ioprio.ClassBE, -1)
	assert.ErrorIs(t, err, unix.EINVAL)
}
