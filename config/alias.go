package config

import "fmt"

// AliasGroupConfig declares one set of asset ids that always carry an
// identical quote
type AliasGroupConfig struct {
	// Canonical is the asset id whose upstream quote drives the group
	Canonical string `yaml:"canonical"`

	// UpstreamKey is the key sent to the price feed for this group.
	// Defaults to Canonical when empty.
	UpstreamKey string `yaml:"upstream_key"`

	// SecondarySource marks the group as priced by the independently
	// configured secondary feed instead of the default one
	SecondarySource bool `yaml:"secondary_source"`

	// Members are the derived asset ids that mirror the canonical quote.
	// They are never queried upstream directly.
	Members []string `yaml:"members"`

	// ZeroOnTestNetwork lists members whose value and change are forced
	// to zero when test network mode is active; timestamps are kept
	ZeroOnTestNetwork []string `yaml:"zero_on_test_network"`
}

// AliasConfig is the static identifier-equivalence table
type AliasConfig struct {
	Groups []AliasGroupConfig `yaml:"groups"`

	// UpstreamKeyOverrides maps standalone asset ids to the deployed
	// contract keys their feed entries are published under
	UpstreamKeyOverrides map[string]string `yaml:"upstream_key_overrides"`
}

// Validate checks the alias table for structural errors before it is
// turned into a resolver
func (c AliasConfig) Validate() error {
	seen := make(map[string]string)

	for _, group := range c.Groups {
		if group.Canonical == "" {
			return fmt.Errorf("alias group without canonical asset id")
		}
		if prev, ok := seen[group.Canonical]; ok {
			return fmt.Errorf("asset %q appears in groups %q and %q", group.Canonical, prev, group.Canonical)
		}
		seen[group.Canonical] = group.Canonical

		memberSet := make(map[string]bool, len(group.Members))
		for _, member := range group.Members {
			if prev, ok := seen[member]; ok {
				return fmt.Errorf("asset %q appears in groups %q and %q", member, prev, group.Canonical)
			}
			seen[member] = group.Canonical
			memberSet[member] = true
		}

		for _, zeroed := range group.ZeroOnTestNetwork {
			if !memberSet[zeroed] && zeroed != group.Canonical {
				return fmt.Errorf("zero_on_test_network asset %q is not a member of group %q", zeroed, group.Canonical)
			}
		}
	}

	return nil
}

// Default alias table: the native coin and its wrapped representations on
// other chains, priced through the secondary feed under one pinned key.
// The next-generation chain ids are zeroed while its test network is live.
func DefaultAliasConfig() AliasConfig {
	return AliasConfig{
		Groups: []AliasGroupConfig{
			{
				Canonical:       "safe-coin",
				UpstreamKey:     "safe-anwang",
				SecondarySource: true,
				Members: []string{
					"safe4-coin",
					"Safe4USDT",
					"ethereum|eip20:0x96f59c9d155d598d4f895f07dd6991ccb5fa7dc7",
					"polygon-pos|eip20:0xe0d3ff9b473976855b2242a1a022ac66f980ce50",
					"binance-smart-chain|eip20:0x3a5557ad6fa16699dd56fd0e418c70c83e42240a",
					"custom_safe-erc20-SAFE",
					"custom_safe-bep20-SAFE",
				},
				ZeroOnTestNetwork: []string{
					"safe4-coin",
					"Safe4USDT",
				},
			},
		},
		UpstreamKeyOverrides: map[string]string{},
	}
}
