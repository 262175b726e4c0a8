package categorize

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spboyer/scorecard/internal/cache"
	"github.com/spboyer/scorecard/internal/models"
)

// Cached remembers canonical answers from Inner per metric name, so a
// metric is only sent to the model once per Namespace.
type Cached struct {
	Inner     Categorizer
	Cache     *cache.Cache
	Namespace string
	Logger    *slog.Logger
}

var _ Categorizer = (*Cached)(nil)

func (c *Cached) Categorize(ctx context.Context, metrics []string) (map[string]models.Category, error) {
	out := make(map[string]models.Category, len(metrics))
	var miss []string
	for _, m := range metrics {
		var cat models.Category
		if c.Cache.Get(c.key(m), &cat) && cat.IsCanonical() {
			out[m] = cat
			continue
		}
		miss = append(miss, m)
	}
	if len(miss) == 0 {
		return out, nil
	}

	got, err := c.Inner.Categorize(ctx, miss)
	if err != nil {
		return nil, err
	}
	for _, m := range miss {
		cat, ok := got[m]
		if !ok || !cat.IsCanonical() {
			continue
		}
		out[m] = cat
		if err := c.Cache.Put(c.key(m), cat); err != nil {
			c.logger().Debug("caching category failed", "metric", m, "error", err)
		}
	}
	return out, nil
}

// Close closes Inner.
func (c *Cached) Close() error {
	return Close(c.Inner)
}

func (c *Cached) key(metric string) string {
	return cache.Key(c.Namespace, strings.ToLower(strings.TrimSpace(metric)))
}

func (c *Cached) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
