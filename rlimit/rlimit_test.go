package rlimit_test

import (
	"testing"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/sysunix/rlimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGetSet(t *testing.T) {
	orig, err := rlimit.Get(rlimit.ResNofile)
	require.NoError(t, err)

	assert.LessOrEqual(t, orig.Cur, orig.Max)

	// Setting the limits back to their current values must always succeed.
	require.NoError(t, rlimit.Set(rlimit.ResNofile, orig))

	got, err := rlimit.Get(rlimit.ResNofile)
	require.NoError(t, err)

	assert.Equal(t, orig, got)
}

func TestResource_text(t *testing.T) {
	testCases := []struct {
		res  rlimit.Resource
		want string
	}{{
		res:  rlimit.ResNofile,
		want: "nofile",
	}, {
		res:  rlimit.ResCPU,
		want: "cpu",
	}, {
		res:  rlimit.ResSigpending,
		want: "sigpending",
	}}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			b, err := tc.res.MarshalText()
			require.NoError(t, err)

			assert.Equal(t, tc.want, string(b))

			var res rlimit.Resource
			require.NoError(t, res.UnmarshalText(b))

			assert.Equal(t, tc.res, res)
		})
	}

	var res rlimit.Resource
	assert.Error(t, res.UnmarshalText([]byte("bogus")))
}

func TestResource_yaml(t *testing.T) {
	conf := struct {
		Resource rlimit.Resource `yaml:"resource"`
		Limit    rlimit.Limit    `yaml:"limit"`
	}{}

	err := yaml.Unmarshal([]byte("resource: memlock\nlimit:\n  cur: 1024\n  max: 2048\n"), &conf)
	require.NoError(t, err)

	assert.Equal(t, rlimit.ResMemlock, conf.Resource)
	assert.Equal(t, rlimit.Limit{Cur: 1024, Max: 2048}, conf.Limit)

	b, err := yaml.Marshal(conf)
	require.NoError(t, err)

	assert.Contains(t, string(b), "resource: memlock")
}

func TestLimit_lowerUpper(t *testing.T) {
	a := rlimit.Limit{Cur: 10, Max: rlimit.Infinity}
	b := rlimit.Limit{Cur: 20, Max: 100}

	assert.Equal(t, rlimit.Limit{Cur: 10, Max: 100}, a.LowerOf(b))
	assert.Equal(t, rlimit.Limit{Cur: 20, Max: rlimit.Infinity}, a.UpperOf(b))

	// The hard field of the result is independent of the soft field.
	assert.Equal(t, rlimit.Limit{Cur: 10, Max: 100}, b.LowerOf(a))
	assert.Equal(t, rlimit.Limit{Cur: 20, Max: rlimit.Infinity}, b.UpperOf(a))
}

func TestGet_unsupported(t *testing.T) {
	_, err := rlimit.Get(rlimit.Resource(1000))
	assert.ErrorIs(t, err, errors.ErrUnsupported)
}
