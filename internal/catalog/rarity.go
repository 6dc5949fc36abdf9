package catalog

import "strings"

// RarityTier is a normalised item rarity
type RarityTier string

// Rarity tiers
const (
	RarityDefault   RarityTier = "default"
	RarityCommon    RarityTier = "common"
	RarityUncommon  RarityTier = "uncommon"
	RarityRare      RarityTier = "rare"
	RarityVeryRare  RarityTier = "very rare"
	RarityLegendary RarityTier = "legendary"
)

// Tier normalises a free-form rarity string. Unknown or empty values map to
// RarityDefault.
func Tier(rarity string) RarityTier {
	switch RarityTier(strings.ToLower(strings.TrimSpace(rarity))) {
	case RarityCommon:
		return RarityCommon
	case RarityUncommon:
		return RarityUncommon
	case RarityRare:
		return RarityRare
	case RarityVeryRare:
		return RarityVeryRare
	case RarityLegendary:
		return RarityLegendary
	default:
		return RarityDefault
	}
}
