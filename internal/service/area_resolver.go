package service

import (
	"strings"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
)

// AreaResolver maps free-text campaign locations onto the two managed areas.
// Matching is exact first, then substring in either direction; the first
// configured name that matches wins, so resolution follows configured order.
type AreaResolver struct {
	entries []areaEntry
}

type areaEntry struct {
	area  models.Area
	names []string
}

// NewAreaResolver builds a resolver from the configured location lists.
func NewAreaResolver(cfg SchedulingConfig) *AreaResolver {
	return &AreaResolver{
		entries: []areaEntry{
			{area: models.AreaGalleriaMall, names: normalizeNames(cfg.GalleriaLocations)},
			{area: models.AreaAlQana, names: normalizeNames(cfg.AlQanaLocations)},
		},
	}
}

// Resolve returns the area for a location, or false when the location is
// outside the managed set.
func (r *AreaResolver) Resolve(location string) (models.Area, bool) {
	needle := strings.ToLower(strings.TrimSpace(location))
	if needle == "" {
		return "", false
	}

	for _, entry := range r.entries {
		for _, name := range entry.names {
			if name == needle {
				return entry.area, true
			}
		}
	}

	for _, entry := range r.entries {
		for _, name := range entry.names {
			if strings.Contains(needle, name) || strings.Contains(name, needle) {
				return entry.area, true
			}
		}
	}

	return "", false
}

// IsAbuDhabi reports whether the location belongs to either managed area.
func (r *AreaResolver) IsAbuDhabi(location string) bool {
	_, ok := r.Resolve(location)
	return ok
}

func normalizeNames(names []string) []string {
	result := make([]string, 0, len(names))
	for _, name := range names {
		trimmed := strings.ToLower(strings.TrimSpace(name))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
