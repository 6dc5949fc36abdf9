package draft

import (
	"regexp"
	"sort"
	"strings"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
)

const fallbackArchetype = "Adventurer"

var qualifierPattern = regexp.MustCompile(`(?i)^(Circle|College|School) of\s+`)

func archetypePart(name string) string {
	trimmed := strings.TrimSpace(name)
	return strings.TrimSpace(qualifierPattern.ReplaceAllString(trimmed, ""))
}

// BuildArchetypeName derives a display name for a class spread. Entries are
// ordered by levels descending then class name; "Circle of", "College of"
// and "School of" prefixes are dropped from subclass names.
func BuildArchetypeName(spread []entities.ClassSpread) string {
	if len(spread) == 0 {
		return fallbackArchetype
	}

	sorted := make([]entities.ClassSpread, len(spread))
	copy(sorted, spread)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Levels != sorted[j].Levels {
			return sorted[i].Levels > sorted[j].Levels
		}
		return sorted[i].Class.Name < sorted[j].Class.Name
	})

	parts := make([]string, 0, len(sorted))
	for _, entry := range sorted {
		part := archetypePart(entry.Subclass.Name)
		if part == "" {
			part = archetypePart(entry.Class.Name)
		}
		if part == "" {
			part = fallbackArchetype
		}
		parts = append(parts, part)
	}

	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " " + parts[1]
	default:
		return parts[0] + " " + parts[1] + " of " + strings.Join(parts[2:], " & ")
	}
}
