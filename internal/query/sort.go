package query

import (
	"sort"
	"strings"

	"github.com/okazakilab/trackdash/internal/model"
)

// priorityLevels in precedence order for label scanning.
var priorityLevels = []model.PriorityLevel{
	model.PriorityCritical,
	model.PriorityHigh,
	model.PriorityMedium,
	model.PriorityLow,
}

// PriorityOf resolves the integer priority of an issue. An override for the
// issue's ID always wins; otherwise the labels are scanned case-insensitively
// for the "priority: <level>" convention in precedence order. Issues with
// neither rank 0.
func PriorityOf(issue *model.Issue, overrides map[string]model.PriorityOverride) int {
	if o, ok := overrides[issue.ID]; ok {
		return o.Priority.Rank()
	}
	for _, level := range priorityLevels {
		want := "priority: " + string(level)
		for _, l := range issue.Labels {
			if strings.EqualFold(l.Name, want) {
				return level.Rank()
			}
		}
	}
	return 0
}

// Compare orders two issues by the key's field. It returns -1, 0, or 1;
// the result is negated when the key is descending. Ties return 0 and are
// left to the stable sort to keep in input order.
func Compare(a, b *model.Issue, key *model.SortKey, overrides map[string]model.PriorityOverride) int {
	var r int
	switch model.SortField(key.Field) {
	case model.SortByCreated:
		r = a.CreatedAt.Compare(b.CreatedAt)
	case model.SortByUpdated:
		r = a.UpdatedAt.Compare(b.UpdatedAt)
	case model.SortByNumber:
		r = compareInt(a.Number, b.Number)
	case model.SortByPriority:
		r = compareInt(PriorityOf(a, overrides), PriorityOf(b, overrides))
	default:
		return 0
	}
	if key.Direction == model.SortDesc {
		r = -r
	}
	return r
}

// SortIssues stable-sorts the slice in place per Compare. Records that
// compare equal keep their relative input order regardless of direction.
func SortIssues(issues []*model.Issue, key *model.SortKey, overrides map[string]model.PriorityOverride) {
	sort.SliceStable(issues, func(i, j int) bool {
		return Compare(issues[i], issues[j], key, overrides) < 0
	})
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
