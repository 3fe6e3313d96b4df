package recipe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:\d+(?:\.\d+)?S)?)?$`)
	hoursPart   = regexp.MustCompile(`(?i)(\d+)\s*h`)
	minutesPart = regexp.MustCompile(`(?i)(\d+)\s*min`)
)

// FormatISODuration converts an ISO-8601 duration into the store's human form:
// PT1H30M -> "1h 30min", PT45M -> "45 min", PT2H -> "2h". Days count as 24h.
// A zero duration yields "". Text that is not an ISO duration is returned trimmed.
func FormatISODuration(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	m := isoDuration.FindStringSubmatch(strings.ToUpper(s))
	if m == nil {
		return s
	}

	hours := atoi(m[1])*24 + atoi(m[2])
	minutes := atoi(m[3])

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0:
		return fmt.Sprintf("%d min", minutes)
	default:
		return ""
	}
}

// FormatMinutes renders a minute count the way scraped times are stored.
func FormatMinutes(total int) string {
	if total <= 0 {
		return ""
	}
	return fmt.Sprintf("%d min", total)
}

// Minutes extracts the total minutes from a human duration such as "1h 30min" or "45 min".
// Missing parts count as zero; unparseable text is zero.
func Minutes(s string) int {
	total := 0
	if m := hoursPart.FindStringSubmatch(s); m != nil {
		total += atoi(m[1]) * 60
	}
	if m := minutesPart.FindStringSubmatch(s); m != nil {
		total += atoi(m[1])
	}
	return total
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
