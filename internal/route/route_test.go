package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trm-labs/notionsync/internal/config"
	"github.com/trm-labs/notionsync/internal/faults"
)

func TestPrefixFromBranch(t *testing.T) {
	tests := []struct {
		branch string
		prefix string
		ok     bool
	}{
		{"feat/hello_world", "feat", true},
		{"bug/fix-login", "bug", true},
		{"BUG/Y", "bug", true},
		{"release-1/notes", "release-1", true},
		{"main", "", false},
		{"", "", false},
		{"/leading-slash", "", false},
	}

	for _, tt := range tests {
		prefix, ok := PrefixFromBranch(tt.branch)
		assert.Equal(t, tt.ok, ok, "branch %q", tt.branch)
		assert.Equal(t, tt.prefix, prefix, "branch %q", tt.branch)
	}
}

func TestResolve(t *testing.T) {
	mapping := config.Mapping{"feat": "P1", "default": "P0"}

	id, err := Resolve(mapping, "feat")
	require.NoError(t, err)
	assert.Equal(t, "P1", id)

	id, err = Resolve(mapping, "chore")
	require.NoError(t, err)
	assert.Equal(t, "P0", id)

	id, err = Resolve(mapping, "")
	require.NoError(t, err)
	assert.Equal(t, "P0", id)
}

func TestResolveWithoutDefaultFails(t *testing.T) {
	mapping := config.Mapping{"feat": "P1"}

	_, err := Resolve(mapping, "chore")
	require.Error(t, err)
	assert.True(t, faults.IsConfiguration(err))
	assert.Contains(t, err.Error(), "chore")

	_, err = Resolve(mapping, "")
	require.Error(t, err)
	assert.True(t, faults.IsConfiguration(err))
}

func TestNormalizePageID(t *testing.T) {
	compact := "0123456789abcdef0123456789abcdef"
	dashed := "01234567-89ab-cdef-0123-456789abcdef"

	got, err := NormalizePageID(compact)
	require.NoError(t, err)
	assert.Equal(t, dashed, got)

	got, err = NormalizePageID("0123456789ABCDEF0123456789ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, dashed, got)
}

func TestNormalizePageIDIsIdempotent(t *testing.T) {
	once, err := NormalizePageID("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	twice, err := NormalizePageID(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestNormalizePageIDRejectsBadInput(t *testing.T) {
	for _, id := range []string{"", "abc123", "0123456789abcdef0123456789abcdef00"} {
		_, err := NormalizePageID(id)
		require.Error(t, err, "id %q", id)
		assert.True(t, faults.IsConfiguration(err), "id %q", id)
	}

	_, err := NormalizePageID("z123456789abcdef0123456789abcdef")
	require.Error(t, err)
	assert.True(t, faults.IsConfiguration(err))
}
