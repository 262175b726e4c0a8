package categorize

import (
	"context"
	"strings"

	"github.com/spboyer/scorecard/internal/models"
)

// keywordRules are checked in order; the first category with a matching
// keyword wins, so "% viewed" lands in Depth before "view" can claim Reach.
var keywordRules = []struct {
	category models.Category
	keywords []string
}{
	{models.CategoryAction, []string{
		"sign-up", "signup", "sign up", "click", "ctr", "conversion", "download",
		"purchase", "install", "registration", "wishlist", "pre-order",
	}},
	{models.CategoryDepth, []string{
		"sentiment", "engagement", "% viewed", "watched", "watch time", "open rate",
		"conversation", "comment", "session", "dau", "retention", "share",
	}},
	{models.CategoryReach, []string{
		"view", "impression", "umv", "article", "reach", "follower", "mention",
	}},
}

// Static categorizes metrics with keyword rules and explicit overrides. It
// needs no network access.
type Static struct {
	overrides map[string]models.Category
}

var _ Categorizer = (*Static)(nil)

// NewStatic returns a keyword categorizer. Override keys are matched
// case-insensitively against metric names; unparseable values are ignored.
func NewStatic(overrides map[string]string) *Static {
	s := &Static{overrides: make(map[string]models.Category, len(overrides))}
	for name, label := range overrides {
		if c, ok := models.ParseCategory(label); ok {
			s.overrides[strings.ToLower(strings.TrimSpace(name))] = c
		}
	}
	return s
}

func (s *Static) Categorize(_ context.Context, metrics []string) (map[string]models.Category, error) {
	out := make(map[string]models.Category, len(metrics))
	for _, m := range metrics {
		out[m] = s.categorize(m)
	}
	return out, nil
}

func (s *Static) categorize(metric string) models.Category {
	lower := strings.ToLower(strings.TrimSpace(metric))
	if c, ok := s.overrides[lower]; ok {
		return c
	}
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return models.CategoryUncategorized
}
