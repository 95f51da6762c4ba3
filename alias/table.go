// Package alias resolves equivalent asset identifiers to the canonical key
// queried upstream, and expands a canonical quote back into every member of
// its group. Resolution is pure: the table is built once from config and
// never mutated.
package alias

import (
	"sort"

	"github.com/openwallet/market-sync/config"
)

// Table is the static identifier-equivalence table
type Table struct {
	// canonicalByAsset maps every group member (canonical included) to
	// its canonical asset id
	canonicalByAsset map[string]string

	// membersByCanonical maps a canonical id to the full group,
	// canonical included, in stable order
	membersByCanonical map[string][]string

	// derived marks pure derived members, never queried upstream
	derived map[string]bool

	// zeroed marks members whose quotes are zeroed in test network mode
	zeroed map[string]bool

	// upstreamKeys maps asset ids to the feed key their quotes are
	// published under, for groups and standalone overrides alike
	upstreamKeys map[string]string

	// secondary marks canonical ids priced by the secondary feed
	secondary map[string]bool
}

// New builds a table from validated alias configuration
func New(cfg config.AliasConfig) *Table {
	t := &Table{
		canonicalByAsset:   make(map[string]string),
		membersByCanonical: make(map[string][]string),
		derived:            make(map[string]bool),
		zeroed:             make(map[string]bool),
		upstreamKeys:       make(map[string]string),
		secondary:          make(map[string]bool),
	}

	for _, group := range cfg.Groups {
		members := make([]string, 0, len(group.Members)+1)
		members = append(members, group.Canonical)
		t.canonicalByAsset[group.Canonical] = group.Canonical

		for _, member := range group.Members {
			t.canonicalByAsset[member] = group.Canonical
			t.derived[member] = true
			members = append(members, member)
		}
		sort.Strings(members[1:])
		t.membersByCanonical[group.Canonical] = members

		for _, member := range group.ZeroOnTestNetwork {
			t.zeroed[member] = true
		}

		key := group.UpstreamKey
		if key == "" {
			key = group.Canonical
		}
		t.upstreamKeys[group.Canonical] = key
		t.secondary[group.Canonical] = group.SecondarySource
	}

	for assetID, key := range cfg.UpstreamKeyOverrides {
		t.upstreamKeys[assetID] = key
	}

	return t
}

// CanonicalKeyFor returns the canonical asset id for any group member;
// identity mapping for assets outside every group
func (t *Table) CanonicalKeyFor(assetID string) string {
	if canonical, ok := t.canonicalByAsset[assetID]; ok {
		return canonical
	}
	return assetID
}

// GroupMembers returns the full alias group for a canonical id, the
// canonical asset itself included. Assets outside every group form a group
// of one.
func (t *Table) GroupMembers(canonical string) []string {
	if members, ok := t.membersByCanonical[canonical]; ok {
		out := make([]string, len(members))
		copy(out, members)
		return out
	}
	return []string{canonical}
}

// IsOverrideAsset reports whether the asset is a pure derived member that
// must never be queried upstream directly
func (t *Table) IsOverrideAsset(assetID string) bool {
	return t.derived[assetID]
}

// IsZeroedOnTestNetwork reports whether the member's quotes are zeroed
// while test network mode is active
func (t *Table) IsZeroedOnTestNetwork(assetID string) bool {
	return t.zeroed[assetID]
}

// UpstreamKeyFor returns the key sent to the price feed for an asset,
// following deployed-contract overrides; identity mapping otherwise
func (t *Table) UpstreamKeyFor(assetID string) string {
	if key, ok := t.upstreamKeys[assetID]; ok {
		return key
	}
	return assetID
}

// IsSecondarySourced reports whether the canonical id is priced by the
// secondary feed rather than the default one
func (t *Table) IsSecondarySourced(canonical string) bool {
	return t.secondary[canonical]
}
