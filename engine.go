package papercraft

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Stats counts what happened during one Process call.
type Stats struct {
	TotalFaces       int `yaml:"total_faces" json:"total_faces"`
	PlanarFaces      int `yaml:"planar_faces" json:"planar_faces"`
	CylindricalFaces int `yaml:"cylindrical_faces" json:"cylindrical_faces"`
	ConicalFaces     int `yaml:"conical_faces" json:"conical_faces"`
	OtherFaces       int `yaml:"other_faces" json:"other_faces"`
	UnfoldableFaces  int `yaml:"unfoldable_faces" json:"unfoldable_faces"`
	Groups           int `yaml:"groups" json:"groups"`
	PlacedGroups     int `yaml:"placed_groups" json:"placed_groups"`
	DroppedGroups    int `yaml:"dropped_groups" json:"dropped_groups"`
	SkippedLoops     int `yaml:"skipped_loops" json:"skipped_loops"`
	SkippedFaces     int `yaml:"skipped_faces" json:"skipped_faces"` // whole faces, such as dropped caps
	Pages            int `yaml:"pages" json:"pages"`
}

// Result is the outcome of unfolding one solid.
type Result struct {
	Groups []PlacedGroup
	Layout OverallLayout
	Pages  []Page // paged layouts only
	Stats  Stats
	Skips  []Skip
}

// Engine runs the unfold and layout pipeline. It keeps no state between
// calls and may be shared between goroutines.
type Engine struct {
	cfg    Config
	policy GroupingPolicy
	tabs   TabGenerator
	caps   CapDetector
	logger zerolog.Logger
}

type Option func(*Engine)

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithGroupingPolicy overrides the policy named in the config.
func WithGroupingPolicy(p GroupingPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

func WithTabGenerator(t TabGenerator) Option {
	return func(e *Engine) {
		e.tabs = t
	}
}

func WithCapDetector(c CapDetector) Option {
	return func(e *Engine) {
		e.caps = c
	}
}

func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := cfg.Grouping.Policy(cfg.MaxGroupSize, cfg.Tolerance)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		policy: policy,
		tabs:   EdgeTabs{Width: cfg.TabWidth},
		caps:   NoCaps{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Process unfolds and lays out the faces of one solid. Records are validated
// first and the first contract violation is returned as a *RecordError
// before any work is done. The records themselves are never modified.
func (e *Engine) Process(records []FaceRecord) (*Result, error) {
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, err
		}
	}

	res := &Result{}
	res.Stats.TotalFaces = len(records)
	for _, r := range records {
		switch r.SurfaceType {
		case SurfacePlane:
			res.Stats.PlanarFaces++
		case SurfaceCylinder:
			res.Stats.CylindricalFaces++
		case SurfaceCone:
			res.Stats.ConicalFaces++
		default:
			res.Stats.OtherFaces++
		}
		if r.SurfaceType.Unfoldable() {
			res.Stats.UnfoldableFaces++
		}
	}

	numbered := NumberFaces(records)
	groups := e.policy.Group(numbered)
	res.Stats.Groups = len(groups)

	unfolder := NewUnfolder(e.cfg, e.logger)
	unfolder.Tabs = e.tabs
	unfolder.Caps = e.caps

	unfolded := make([]UnfoldedGroup, 0, len(groups))
	for _, g := range groups {
		ug, skips, ok := unfolder.UnfoldGroup(g)
		res.Skips = append(res.Skips, skips...)
		if !ok {
			res.Stats.DroppedGroups++
			e.logger.Debug().Int("group", g.Index).Msg("dropped group with no polygons")
			continue
		}
		unfolded = append(unfolded, ug)
	}
	for _, s := range res.Skips {
		if s.Loop < 0 {
			res.Stats.SkippedFaces++
		} else {
			res.Stats.SkippedLoops++
		}
	}

	layout := NewLayoutEngine(e.cfg, e.logger)
	switch e.cfg.LayoutMode {
	case LayoutPaged:
		placed, pages, overall, err := layout.LayoutPages(unfolded)
		if err != nil {
			return nil, fmt.Errorf("paged layout: %w", err)
		}
		res.Groups, res.Pages, res.Layout = placed, pages, overall
	default:
		res.Groups, res.Layout = layout.Layout(unfolded)
	}
	res.Stats.PlacedGroups = len(res.Groups)
	res.Stats.Pages = len(res.Pages)

	e.logger.Info().
		Int("faces", res.Stats.TotalFaces).
		Int("groups", res.Stats.PlacedGroups).
		Int("dropped", res.Stats.DroppedGroups).
		Int("skipped_loops", res.Stats.SkippedLoops).
		Int("skipped_faces", res.Stats.SkippedFaces).
		Int("pages", res.Stats.Pages).
		Msg("unfolded solid")
	return res, nil
}
