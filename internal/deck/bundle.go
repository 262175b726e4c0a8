// Package deck assembles the hand-off bundle consumed by the external slide
// renderer and publishes it to disk or Azure Blob Storage.
package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/spboyer/scorecard/internal/benchmark"
	"github.com/spboyer/scorecard/internal/models"
	"github.com/spboyer/scorecard/internal/scorecard"
	"github.com/spboyer/scorecard/internal/session"
)

// Defaults for an export request.
const (
	DefaultTitle       = "Game Scorecard"
	DefaultSubtitle    = "A detailed analysis"
	DefaultImageRegion = "Brazil"
)

var (
	// ErrNoMoments is returned when no saved moment was selected.
	ErrNoMoments = errors.New("select at least one saved moment")

	// ErrUnknownStyle is returned for a style outside the configured presets.
	ErrUnknownStyle = errors.New("unknown deck style")
)

// Request describes the deck to build. An empty Moments list selects every
// saved moment.
type Request struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Style       string   `json:"style"`
	ImageRegion string   `json:"image_region"`
	Moments     []string `json:"moments"`
}

// Bundle is the document handed to the slide renderer.
type Bundle struct {
	ID          string                  `json:"id"`
	CreatedAt   time.Time               `json:"created_at"`
	Title       string                  `json:"title"`
	Subtitle    string                  `json:"subtitle"`
	Style       string                  `json:"style"`
	ImageRegion string                  `json:"image_region"`
	Objective   models.Objective        `json:"objective,omitempty"`
	Investment  models.Investment       `json:"investment,omitempty"`
	Moments     scorecard.Moments       `json:"moments"`
	Benchmarks  []benchmark.SummaryRow  `json:"benchmarks,omitempty"`
	Strategy    *models.StrategyProfile `json:"strategy,omitempty"`
}

// Builder turns requests into bundles using the configured style presets.
type Builder struct {
	Styles       []string
	DefaultStyle string

	Now   func() time.Time
	NewID func() string
}

// Build assembles a bundle from the session. Selected moments keep the order
// they were requested in.
func (b *Builder) Build(req Request, st *session.State) (*Bundle, error) {
	style := strings.TrimSpace(req.Style)
	if style == "" {
		style = b.DefaultStyle
	}
	if !slices.Contains(b.Styles, style) {
		return nil, fmt.Errorf("%w %q: must be one of %s", ErrUnknownStyle, style, strings.Join(b.Styles, ", "))
	}

	names := req.Moments
	if len(names) == 0 {
		names = st.Moments.Names()
	}
	if len(names) == 0 {
		return nil, ErrNoMoments
	}
	moments, err := st.Moments.Select(names)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{
		ID:          b.newID(),
		CreatedAt:   b.now().UTC(),
		Title:       orDefault(req.Title, DefaultTitle),
		Subtitle:    orDefault(req.Subtitle, DefaultSubtitle),
		Style:       style,
		ImageRegion: orDefault(req.ImageRegion, DefaultImageRegion),
		Moments:     moments,
		Benchmarks:  benchmark.SummaryRows(st.Summary),
		Strategy:    st.Profile,
	}
	if st.Strategy != nil {
		bundle.Objective = st.Strategy.Objective
		bundle.Investment = st.Strategy.Investment
	}
	return bundle, nil
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b *Builder) newID() string {
	if b.NewID != nil {
		return b.NewID()
	}
	return uuid.NewString()
}

// FileName is the object name used for a bundle.
func (b *Bundle) FileName() string {
	return b.ID + ".json.gz"
}

// WriteGzip writes the bundle as gzip-compressed JSON.
func WriteGzip(w io.Writer, b *Bundle) error {
	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(b); err != nil {
		zw.Close() //nolint:errcheck
		return fmt.Errorf("encoding bundle: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing bundle: %w", err)
	}
	return nil
}

// ReadGzip decodes a bundle written by WriteGzip.
func ReadGzip(r io.Reader) (*Bundle, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening bundle: %w", err)
	}
	defer zr.Close() //nolint:errcheck

	var b Bundle
	if err := json.NewDecoder(zr).Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding bundle: %w", err)
	}
	return &b, nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
