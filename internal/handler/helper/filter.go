package helper

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/yourusername/quorum-api/internal/service/stats"
)

// Разбор демографических фильтров статистики из query-параметров.
// Формат: party_ids=1,2&team_ids=3&gender=female&age_ranges=18-25,65-
// Внутри параметра значения объединяются по ИЛИ, параметры между собой - по И.

// ParseStatsFilter разбирает фильтры агрегации из query-строки
func ParseStatsFilter(query url.Values) (stats.Filter, error) {
	var f stats.Filter

	ids, err := parseIDList(query.Get("party_ids"))
	if err != nil {
		return f, fmt.Errorf("invalid party_ids: %w", err)
	}
	f.PartyIDs = ids

	ids, err = parseIDList(query.Get("team_ids"))
	if err != nil {
		return f, fmt.Errorf("invalid team_ids: %w", err)
	}
	f.TeamIDs = ids

	f.Gender = strings.TrimSpace(query.Get("gender"))

	ranges, err := parseAgeRanges(query.Get("age_ranges"))
	if err != nil {
		return f, err
	}
	f.AgeRanges = ranges

	return f, nil
}

func parseIDList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid id", part)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// parseAgeRanges разбирает список диапазонов вида "18-25,65-".
// Открытый верх ("65-") означает "и старше".
func parseAgeRanges(raw string) ([]stats.AgeRange, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ranges := make([]stats.AgeRange, 0, len(parts))
	for _, part := range parts {
		bounds := strings.SplitN(strings.TrimSpace(part), "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid age range %q, expected min-max", part)
		}

		min, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil || min < 0 {
			return nil, fmt.Errorf("invalid age range %q: bad lower bound", part)
		}

		r := stats.AgeRange{Min: min}
		if maxStr := strings.TrimSpace(bounds[1]); maxStr != "" {
			max, err := strconv.Atoi(maxStr)
			if err != nil || max < min {
				return nil, fmt.Errorf("invalid age range %q: bad upper bound", part)
			}
			r.Max = &max
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
