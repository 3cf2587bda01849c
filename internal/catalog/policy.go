// Package catalog keeps the local item catalog in sync with the versioned
// upstream Data Dragon catalog, filtered down to items that can appear in a
// completed build.
package catalog

// ItemExceptions are final-tier-equivalent items that still carry an upgrade
// edge in the raw data and must be tracked anyway.
var ItemExceptions = map[int]bool{
	3006: true, // Berserker's Greaves
	3010: true, // Symbiotic Soles
}

// ExcludedItems are never tracked regardless of upgrade path: consumables,
// wards, jungle pets and trinkets cannot be part of a final build.
var ExcludedItems = map[int]bool{
	2003:   true, // Health Potion
	2055:   true, // Control Ward
	1101:   true, // Scorchclaw Pup
	1102:   true, // Gustwalker Hatchling
	1103:   true, // Mosstomper Seedling
	3363:   true, // Farsight Alteration
	3364:   true, // Oracle Lens
	3340:   true, // Stealth Ward
	2056:   true, // Stealth Ward
	2138:   true, // Elixir of Iron
	2139:   true, // Elixir of Sorcery
	2140:   true, // Elixir of Wrath
	3172:   true, // Zephyr
	223172: true, // Zephyr (Ornn upgrade)
	3865:   true, // World Atlas
}

// ShouldTrack decides whether an upstream item record belongs in the local
// catalog: the item must not be excluded, and must either have no further
// upgrade path or be on the exception list. Exclusion wins over everything.
func ShouldTrack(itemID int, hasUpgradePath bool, exceptions, excluded map[int]bool) bool {
	if excluded[itemID] {
		return false
	}
	return !hasUpgradePath || exceptions[itemID]
}
