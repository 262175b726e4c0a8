// Package categorize assigns each campaign metric to a funnel category
// (Reach, Depth or Action).
package categorize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spboyer/scorecard/internal/cache"
	"github.com/spboyer/scorecard/internal/models"
)

// ErrEmptyResponse is returned when the model produced no usable answer.
var ErrEmptyResponse = errors.New("categorizer returned an empty response")

// ErrClosed is returned by a categorizer used after Close.
var ErrClosed = errors.New("categorizer is closed")

//go:generate go tool mockgen -source=categorize.go -destination=mock_categorizer.go -package=categorize

// Categorizer maps metric names to categories. Implementations may leave
// metrics out of the result; callers treat those as Uncategorized.
type Categorizer interface {
	Categorize(ctx context.Context, metrics []string) (map[string]models.Category, error)
}

const (
	EngineStatic  = "static"
	EngineCopilot = "copilot"
)

// Options configures New.
type Options struct {
	Engine    string
	Model     string
	Timeout   time.Duration
	Overrides map[string]string
	// CacheDir, when set, keeps model answers between runs.
	CacheDir string
	Logger   *slog.Logger
}

// New builds the configured categorizer. The copilot engine falls back to
// keyword rules when the model call fails.
func New(opts Options) (Categorizer, error) {
	static := NewStatic(opts.Overrides)
	switch opts.Engine {
	case "", EngineStatic:
		return static, nil
	case EngineCopilot:
		ai := NewCopilot(opts.Model, nil)
		ai.timeout = opts.Timeout
		var primary Categorizer = ai
		if opts.CacheDir != "" {
			primary = &Cached{
				Inner:     ai,
				Cache:     cache.New(opts.CacheDir),
				Namespace: EngineCopilot + ":" + opts.Model,
				Logger:    opts.Logger,
			}
		}
		return &Fallback{Primary: primary, Secondary: static, Logger: opts.Logger}, nil
	default:
		return nil, fmt.Errorf("unknown categorizer engine %q: must be %s or %s", opts.Engine, EngineStatic, EngineCopilot)
	}
}

// Fallback tries Primary first and uses Secondary when it fails.
type Fallback struct {
	Primary   Categorizer
	Secondary Categorizer
	Logger    *slog.Logger
}

func (f *Fallback) Categorize(ctx context.Context, metrics []string) (map[string]models.Category, error) {
	out, err := f.Primary.Categorize(ctx, metrics)
	if err == nil {
		return out, nil
	}
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("primary categorizer failed, using fallback", "error", err)
	return f.Secondary.Categorize(ctx, metrics)
}

// Close stops the primary and secondary categorizers.
func (f *Fallback) Close() error {
	return errors.Join(Close(f.Primary), Close(f.Secondary))
}

// Close releases whatever c holds open. Categorizers that hold nothing open
// are left alone.
func Close(c Categorizer) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Complete returns a copy of categories with an entry for every metric.
// Missing and unrecognised labels become Uncategorized.
func Complete(metrics []string, categories map[string]models.Category) map[string]models.Category {
	out := make(map[string]models.Category, len(metrics))
	for _, m := range metrics {
		c, ok := models.ParseCategory(string(categories[m]))
		if !ok {
			c = models.CategoryUncategorized
		}
		out[m] = c
	}
	return out
}
