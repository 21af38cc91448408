package service

import (
	"sort"
	"strings"

	"qubeia/internal/authz"
	"qubeia/internal/models"
)

// FilterVisible reduces a section snapshot to what the viewer may see. It is
// a pure function over its inputs:
//
//  1. soft-deleted items are dropped unless the viewer ranks admin or above,
//  2. in rank-restricted sections without full visibility only the viewer's
//     own items survive,
//  3. an optional query keeps items whose title or body contains it,
//     case-insensitively,
//  4. the result is ordered newest first, higher id first on ties.
//
// Entry checks happen before this runs; the filter assumes the viewer may
// enter the section.
func FilterVisible(policy *authz.SectionPolicy, viewer Actor, section string, items []*models.ContentItem, query string) []*models.ContentItem {
	seesDeleted := viewer.RankAtLeast(models.RoleAdmin)
	ownOnly := false
	if sec, ok := policy.Classify(section); ok && sec.Class == authz.SectionRankRestricted {
		ownOnly = !policy.FullVisibility(viewer.Role, section)
	}
	needle := strings.ToLower(query)

	visible := make([]*models.ContentItem, 0, len(items))
	for _, item := range items {
		if item.Deleted() && !seesDeleted {
			continue
		}
		if ownOnly && item.AuthorID != viewer.ID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Title), needle) &&
			!strings.Contains(strings.ToLower(item.Body), needle) {
			continue
		}
		visible = append(visible, item)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return visible
}
