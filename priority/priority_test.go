package priority_test

import (
	"testing"

	"github.com/AdguardTeam/sysunix/priority"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	nice, err := priority.Get(priority.Process(0))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, nice, -20)
	assert.LessOrEqual(t, nice, 19)
}

func TestSetNice(t *testing.T) {
	orig, err := priority.Get(priority.Process(0))
	require.NoError(t, err)

	// Unprivileged processes can only lower their priority, and this cannot
	// be undone, so only exercise the no-op path.
	require.NoError(t, priority.Set(priority.Process(0), orig))

	got, err := priority.Nice(0)
	require.NoError(t, err)

	assert.Equal(t, orig, got)
}
