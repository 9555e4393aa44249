package ids

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SortsInCreationOrder(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	got := make([]string, 50)
	for i := range got {
		got[i] = NewAt(now)
	}

	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	assert.Equal(t, sorted, got)
}

func TestTime(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_123)
	ts, ok := Time(NewAt(now))
	require.True(t, ok)
	assert.True(t, now.Equal(ts))

	_, ok = Time("not-a-ulid")
	assert.False(t, ok)
}
