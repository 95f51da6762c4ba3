package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwallet/market-sync/config"
)

func testAliasConfig() config.AliasConfig {
	return config.AliasConfig{
		Groups: []config.AliasGroupConfig{
			{
				Canonical:         "X",
				UpstreamKey:       "x-feed",
				SecondarySource:   true,
				Members:           []string{"X-wrapped-A", "X-wrapped-B", "X-next"},
				ZeroOnTestNetwork: []string{"X-next"},
			},
		},
		UpstreamKeyOverrides: map[string]string{
			"custom-token": "0xdeployed",
		},
	}
}

func TestTable_CanonicalKeyFor(t *testing.T) {
	table := New(testAliasConfig())

	assert.Equal(t, "X", table.CanonicalKeyFor("X"))
	assert.Equal(t, "X", table.CanonicalKeyFor("X-wrapped-A"))
	assert.Equal(t, "X", table.CanonicalKeyFor("X-wrapped-B"))

	// Identity mapping outside every group
	assert.Equal(t, "bitcoin", table.CanonicalKeyFor("bitcoin"))
}

func TestTable_GroupMembers(t *testing.T) {
	table := New(testAliasConfig())

	members := table.GroupMembers("X")
	require.Len(t, members, 4)
	assert.Equal(t, "X", members[0], "canonical asset leads the group")
	assert.ElementsMatch(t, []string{"X", "X-wrapped-A", "X-wrapped-B", "X-next"}, members)

	// Ungrouped assets form a group of one
	assert.Equal(t, []string{"bitcoin"}, table.GroupMembers("bitcoin"))
}

func TestTable_OverrideAndZeroedMembers(t *testing.T) {
	table := New(testAliasConfig())

	assert.True(t, table.IsOverrideAsset("X-wrapped-A"))
	assert.False(t, table.IsOverrideAsset("X"), "canonical asset is queried upstream")
	assert.False(t, table.IsOverrideAsset("bitcoin"))

	assert.True(t, table.IsZeroedOnTestNetwork("X-next"))
	assert.False(t, table.IsZeroedOnTestNetwork("X-wrapped-A"))
}

func TestTable_UpstreamKeys(t *testing.T) {
	table := New(testAliasConfig())

	assert.Equal(t, "x-feed", table.UpstreamKeyFor("X"))
	assert.Equal(t, "0xdeployed", table.UpstreamKeyFor("custom-token"))
	assert.Equal(t, "bitcoin", table.UpstreamKeyFor("bitcoin"))

	assert.True(t, table.IsSecondarySourced("X"))
	assert.False(t, table.IsSecondarySourced("bitcoin"))
}

func TestTable_DefaultConfigResolves(t *testing.T) {
	cfg := config.DefaultAliasConfig()
	require.NoError(t, cfg.Validate())

	table := New(cfg)
	assert.Equal(t, "safe-coin", table.CanonicalKeyFor("safe4-coin"))
	assert.Equal(t, "safe-anwang", table.UpstreamKeyFor("safe-coin"))
	assert.True(t, table.IsSecondarySourced("safe-coin"))
	assert.True(t, table.IsZeroedOnTestNetwork("Safe4USDT"))
	assert.Len(t, table.GroupMembers("safe-coin"), 8)
}

func TestAliasConfig_ValidateRejectsSharedMembers(t *testing.T) {
	cfg := config.AliasConfig{
		Groups: []config.AliasGroupConfig{
			{Canonical: "A", Members: []string{"shared"}},
			{Canonical: "B", Members: []string{"shared"}},
		},
	}
	assert.Error(t, cfg.Validate())

	cfg = config.AliasConfig{
		Groups: []config.AliasGroupConfig{
			{Canonical: "A", Members: []string{"m"}, ZeroOnTestNetwork: []string{"not-a-member"}},
		},
	}
	assert.Error(t, cfg.Validate())
}
