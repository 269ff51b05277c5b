package helpers

import (
	"strings"
	"time"

	"github.com/hako/durafmt"
)

// HumanDuration renders d for chat, e.g. "1 minute 12 seconds".
func HumanDuration(d time.Duration) string {
	if d < time.Second {
		return "less than a second"
	}
	return durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).String()
}

// JoinBold joins items with ", " and wraps each one in IRC bold markers.
func JoinBold(items []string) string {
	bold := make([]string, len(items))
	for i, item := range items {
		bold[i] = "{b}" + item + "{b}"
	}
	return strings.Join(bold, ", ")
}
