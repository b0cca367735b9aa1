package narrative

import (
	"strings"
)

// ParsedResponse is the structured form of a generator response.
type ParsedResponse struct {
	Overview        string
	Insights        []string
	Recommendations []string
	HasMarkers      bool
}

// Section markers expected in generator output, matched case-insensitively.
const (
	markerOverview        = "[overview]"
	markerInsights        = "[key insights]"
	markerRecommendations = "[actionable recommendations]"
)

// Parse splits a generator response into overview, insights and
// recommendations using section markers and per-line bullet detection.
// A response without recognizable markers is treated entirely as the
// overview — an ambiguous parse, not an error.
func Parse(text string) ParsedResponse {
	var parsed ParsedResponse

	section := "overview"
	var overviewLines []string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, markerOverview):
			section = "overview"
			parsed.HasMarkers = true
			continue
		case strings.Contains(lower, markerInsights):
			section = "insights"
			parsed.HasMarkers = true
			continue
		case strings.Contains(lower, markerRecommendations):
			section = "recommendations"
			parsed.HasMarkers = true
			continue
		}

		if line == "" {
			if section == "overview" {
				overviewLines = append(overviewLines, "")
			}
			continue
		}

		switch section {
		case "overview":
			overviewLines = append(overviewLines, line)
		case "insights":
			if item, ok := extractListItem(line); ok {
				parsed.Insights = append(parsed.Insights, item)
			}
		case "recommendations":
			if item, ok := extractListItem(line); ok {
				parsed.Recommendations = append(parsed.Recommendations, item)
			}
		}
	}

	parsed.Overview = strings.TrimSpace(strings.Join(overviewLines, "\n"))

	if !parsed.HasMarkers {
		// No recognizable structure: the whole response is the overview.
		parsed.Overview = strings.TrimSpace(text)
		parsed.Insights = nil
		parsed.Recommendations = nil
	}

	return parsed
}

// extractListItem strips a leading bullet or number from a line.
// Unbulleted lines still count when they carry substantial content.
func extractListItem(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, "0123456789.)•-* \t")
	trimmed = strings.TrimSpace(trimmed)

	if isBulleted(line) {
		return trimmed, trimmed != ""
	}
	if len(line) > 20 {
		return line, true
	}
	return "", false
}

func isBulleted(line string) bool {
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
		return true
	}
	return line[0] >= '0' && line[0] <= '9'
}
