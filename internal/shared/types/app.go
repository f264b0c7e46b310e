package types

import (
	"strings"
	"time"
)

// Category labels an application by rough purpose. The set is closed but
// extensible: unknown apps fall back to CategoryOther.
type Category string

const (
	CategoryCommunication Category = "Communication"
	CategoryDevelopment   Category = "Development"
	CategoryBrowser       Category = "Browser"
	CategoryEntertainment Category = "Entertainment"
	CategoryGames         Category = "Games"
	CategorySystem        Category = "System"
	CategoryUtilities     Category = "Utilities"
	CategoryOther         Category = "Other"
)

// Categories returns all known category labels.
func Categories() []Category {
	return []Category{
		CategoryCommunication,
		CategoryDevelopment,
		CategoryBrowser,
		CategoryEntertainment,
		CategoryGames,
		CategorySystem,
		CategoryUtilities,
		CategoryOther,
	}
}

// ParseCategory matches a case-insensitive label to a known category.
func ParseCategory(label string) (Category, bool) {
	for _, c := range Categories() {
		if strings.EqualFold(string(c), label) {
			return c, true
		}
	}
	return CategoryOther, false
}

// AppDescriptor is one discovered or statically known application.
//
// For non-system apps ExecutablePath is absolute and existed at scan time;
// staleness between scans surfaces as a launch-time failure, not a registry
// defect. System apps are launched by bare command name and carry no path.
type AppDescriptor struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	ExecutablePath     string    `json:"executablePath"`
	ExecutableFileName string    `json:"executableFileName"`
	Category           Category  `json:"category"`
	Aliases            []string  `json:"aliases"`
	IsSystemApp        bool      `json:"isSystemApp"`
	LaunchArguments    []string  `json:"launchArguments,omitempty"`
	DiscoveredAt       time.Time `json:"discoveredAt"`
}

// Clone returns a deep copy so registry callers never share slices with the
// canonical collection.
func (a AppDescriptor) Clone() AppDescriptor {
	out := a
	out.Aliases = append([]string(nil), a.Aliases...)
	out.LaunchArguments = append([]string(nil), a.LaunchArguments...)
	return out
}

// HasAlias reports whether alias (already lowercased) is in the alias set.
func (a AppDescriptor) HasAlias(alias string) bool {
	for _, al := range a.Aliases {
		if al == alias {
			return true
		}
	}
	return false
}

// RegistryStats summarizes the registry contents.
type RegistryStats struct {
	Total       int            `json:"total"`
	SystemCount int            `json:"systemCount"`
	UserCount   int            `json:"userCount"`
	ByCategory  map[string]int `json:"byCategory"`
	LastUpdated *time.Time     `json:"lastUpdated,omitempty"`
}
