package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = oldVersion, oldCommit, oldDate })

	Version, Commit, BuildDate = "1.2.3", "abc123", "2024-01-01"
	assert.Equal(t, "1.2.3 (commit: abc123, built: 2024-01-01)", String())
	assert.False(t, IsDev())

	Version = "dev"
	assert.True(t, IsDev())
}
