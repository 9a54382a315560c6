package tasks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/loupecli/loupe/internal/dao"
)

// lifecycleOrder is the ECS task lifecycle in transition order. Statuses the
// API returns that are not listed here sort after these, alphabetically.
var lifecycleOrder = []string{
	"PROVISIONING",
	"PENDING",
	"ACTIVATING",
	"RUNNING",
	"DEACTIVATING",
	"STOPPING",
	"DEPROVISIONING",
	"STOPPED",
}

// CountByStatus aggregates tasks by their last status. Any status string is
// counted; the domain is whatever the API returns.
func CountByStatus(resources []dao.Resource) map[string]int {
	counts := make(map[string]int)
	for _, r := range resources {
		task, ok := r.(*TaskResource)
		if !ok {
			continue
		}
		counts[task.LastStatus()]++
	}
	return counts
}

// StatusOrder returns the statuses present in counts, lifecycle statuses
// first in transition order, unknown statuses last alphabetically.
func StatusOrder(counts map[string]int) []string {
	var known, unknown []string
	for status := range counts {
		if slices.Contains(lifecycleOrder, status) {
			known = append(known, status)
		} else {
			unknown = append(unknown, status)
		}
	}
	slices.SortFunc(known, func(a, b string) int {
		return slices.Index(lifecycleOrder, a) - slices.Index(lifecycleOrder, b)
	})
	slices.Sort(unknown)
	return append(known, unknown...)
}

// FormatStatusSummary renders an aggregated status line like
// "running:3 pending:1 stopped:1".
func FormatStatusSummary(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(counts))
	for _, status := range StatusOrder(counts) {
		parts = append(parts, fmt.Sprintf("%s:%d", strings.ToLower(status), counts[status]))
	}
	return strings.Join(parts, " ")
}
