// Package studio sequences prompt building and image generation into the
// user-facing operations: initial batch, rotation, print files, effect
// reapplication and model swap.
package studio

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/imagegen"
	"mockupstudio/internal/infra"
)

// MaxBatch is the largest number of designs one initial request may ask for.
const MaxBatch = 4

// Generator produces at most one image per call. A nil result means the
// attempt failed; the reason has already been logged.
type Generator interface {
	Generate(ctx context.Context, prompt string, input domain.ImageInput) *domain.Image
	Provider() string
}

// GenderPolicy picks the model gender for the design at index in a batch.
type GenderPolicy func(index int) domain.Gender

// AlternatingGender starts with FEMALE and alternates.
func AlternatingGender(index int) domain.Gender {
	if index%2 == 0 {
		return domain.GenderFemale
	}
	return domain.GenderMale
}

// Studio is stateless apart from its collaborators and safe for concurrent use.
type Studio struct {
	client   Generator
	logger   *infra.Logger
	now      func() time.Time
	newID    func() string
	gender   GenderPolicy
	recorder Recorder
}

// Option configures a Studio.
type Option func(*Studio)

func WithLogger(l *infra.Logger) Option {
	return func(s *Studio) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Studio) { s.now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Studio) { s.newID = newID }
}

func WithGenderPolicy(p GenderPolicy) Option {
	return func(s *Studio) {
		if p != nil {
			s.gender = p
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Studio) {
		if r != nil {
			s.recorder = r
		}
	}
}

func New(client Generator, opts ...Option) *Studio {
	discard := zerolog.New(io.Discard)
	s := &Studio{
		client:   client,
		logger:   &discard,
		now:      time.Now,
		newID:    uuid.NewString,
		gender:   AlternatingGender,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InitialRequest asks for Count front-view designs of one concept.
type InitialRequest struct {
	Concept     string
	BackConcept string
	Style       string
	Apparel     domain.Apparel
	Logo        *domain.LogoConfig
	Count       int
}

// Validate checks the request without contacting any backend.
func (r InitialRequest) Validate() error {
	if strings.TrimSpace(r.Concept) == "" {
		return ErrEmptyConcept
	}
	if r.Count < 1 || r.Count > MaxBatch {
		return ErrInvalidCount
	}
	return nil
}

// GenerateInitial issues Count front generations concurrently and returns one
// design per success, in batch order. ErrBatchFailed is returned when none
// succeeded.
func (s *Studio) GenerateInitial(ctx context.Context, req InitialRequest) ([]domain.Design, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	concept := strings.TrimSpace(req.Concept)
	style, known := imagegen.ResolveStyle(req.Style)
	if !known {
		s.logger.Info().Str("style", req.Style).Str("fallback", style.Key).Msg("studio: unknown style, using default")
	}
	input := domain.NoImage()
	if req.Logo != nil {
		input = domain.LogoImage(req.Logo.Image)
	}

	slots := make([]*domain.Design, req.Count)
	g, gctx := errgroup.WithContext(ctx)
	for i := range slots {
		g.Go(func() error {
			d := domain.Design{
				ID:          s.newID(),
				Concept:     concept,
				BackConcept: strings.TrimSpace(req.BackConcept),
				Style:       style.Key,
				Apparel:     req.Apparel,
				Logo:        req.Logo,
				Gender:      s.gender(i),
			}
			prompt := imagegen.BuildPrompt(promptFor(d, domain.ViewFront, domain.EffectNone, false))
			img := s.generate(gctx, d.ID, domain.ViewFront, prompt, input)
			if img == nil {
				return nil
			}
			d.Views = domain.ViewSet{Front: img}
			d.CreatedAt = s.now()
			slots[i] = &d
			return nil
		})
	}
	_ = g.Wait()

	designs := make([]domain.Design, 0, len(slots))
	for _, d := range slots {
		if d != nil {
			designs = append(designs, *d)
		}
	}
	s.logger.Info().
		Str("concept", concept).
		Int("requested", req.Count).
		Int("generated", len(designs)).
		Msg("studio: initial batch finished")
	if len(designs) == 0 {
		return nil, ErrBatchFailed
	}
	return designs, nil
}

// CompleteRotation fills every empty rotation slot. The front image anchors
// the set; after a model swap cleared it, the displayed view (or the first
// remaining rotation view) is the reference and front is regenerated too. The
// returned patch holds only successful views.
func (s *Studio) CompleteRotation(ctx context.Context, d domain.Design, view domain.View, effect domain.TextEffect) domain.ViewSet {
	ref := rotationReference(d.Views, view)
	if ref == nil {
		return domain.ViewSet{}
	}
	missing := d.Views.Missing(domain.RotationViews...)
	return s.fanOut(ctx, d, missing, func(v domain.View) (string, domain.ImageInput) {
		return imagegen.BuildPrompt(promptFor(d, v, effect, true)), domain.ReferenceImage(*ref)
	})
}

func rotationReference(views domain.ViewSet, displayed domain.View) *domain.Image {
	if views.Front != nil {
		return views.Front
	}
	if !displayed.IsFlat() {
		if img := views.Get(displayed); img != nil {
			return img
		}
	}
	for _, v := range domain.RotationViews {
		if img := views.Get(v); img != nil {
			return img
		}
	}
	return nil
}

// GeneratePrintFiles produces both flat artworks, unless either one already
// exists, in which case nothing is generated.
func (s *Studio) GeneratePrintFiles(ctx context.Context, d domain.Design, effect domain.TextEffect) domain.ViewSet {
	if d.Views.Has(domain.ViewFlatFront) || d.Views.Has(domain.ViewFlatBack) {
		return domain.ViewSet{}
	}
	input := logoInput(d)
	return s.fanOut(ctx, d, domain.PrintViews, func(view domain.View) (string, domain.ImageInput) {
		return imagegen.BuildPrompt(promptFor(d, view, effect, false)), input
	})
}

// ApplyEffect regenerates view with effect. Non-front views are anchored to
// the front image when one exists; otherwise the logo is the only input.
func (s *Studio) ApplyEffect(ctx context.Context, d domain.Design, view domain.View, effect domain.TextEffect) domain.ViewSet {
	if !view.Valid() {
		return domain.ViewSet{}
	}
	input, hasRef := logoInput(d), false
	if view != domain.ViewFront && d.Views.Front != nil {
		input, hasRef = domain.ReferenceImage(*d.Views.Front), true
	}
	prompt := imagegen.BuildPrompt(promptFor(d, view, effect, hasRef))
	img := s.generate(ctx, d.ID, view, prompt, input)
	return domain.ViewSet{}.With(view, img)
}

// SwapGender regenerates view with the opposite model gender, keeping the
// garment from the current image. On success the other rotation views are
// cleared because they show the previous model; print files are kept.
func (s *Studio) SwapGender(ctx context.Context, d domain.Design, view domain.View, effect domain.TextEffect) (domain.Design, bool) {
	if !view.Valid() || view.IsFlat() {
		return d, false
	}
	swapped := d.Clone()
	swapped.Gender = d.Gender.Flip()

	req := promptFor(swapped, view, effect, false)
	input := logoInput(d)
	if current := d.Views.Get(view); current != nil {
		input = domain.ReferenceImage(*current)
		req.HasReference = true
		req.ModelSwap = true
	}
	img := s.generate(ctx, d.ID, view, imagegen.BuildPrompt(req), input)
	if img == nil {
		return d, false
	}
	swapped.Views = domain.ViewSet{
		FlatFront: d.Views.FlatFront,
		FlatBack:  d.Views.FlatBack,
	}.With(view, img)
	return swapped, true
}

type promptSource func(view domain.View) (string, domain.ImageInput)

// fanOut generates views concurrently. Each goroutine writes only its own
// slot, so the result does not depend on completion order.
func (s *Studio) fanOut(ctx context.Context, d domain.Design, views []domain.View, build promptSource) domain.ViewSet {
	results := make([]*domain.Image, len(views))
	g, gctx := errgroup.WithContext(ctx)
	for i, view := range views {
		g.Go(func() error {
			prompt, input := build(view)
			results[i] = s.generate(gctx, d.ID, view, prompt, input)
			return nil
		})
	}
	_ = g.Wait()

	var patch domain.ViewSet
	for i, view := range views {
		if results[i] != nil {
			patch = patch.With(view, results[i])
		}
	}
	return patch
}

func (s *Studio) generate(ctx context.Context, designID string, view domain.View, prompt string, input domain.ImageInput) *domain.Image {
	started := s.now()
	img := s.client.Generate(ctx, prompt, input)
	s.recorder.Record(ctx, Attempt{
		DesignID:   designID,
		View:       view,
		Provider:   s.client.Provider(),
		PromptHash: promptHash(prompt),
		Input:      input.Kind(),
		Success:    img != nil,
		Duration:   s.now().Sub(started),
		At:         started,
	})
	if img == nil {
		s.logger.Warn().Str("design_id", designID).Str("view", string(view)).Msg("studio: view not generated")
	}
	return img
}

func promptFor(d domain.Design, view domain.View, effect domain.TextEffect, hasRef bool) imagegen.PromptRequest {
	return imagegen.PromptRequest{
		Concept:      d.Concept,
		Style:        d.Style,
		View:         view,
		Apparel:      d.Apparel,
		Logo:         d.Logo,
		Effect:       effect,
		Gender:       d.Gender,
		HasReference: hasRef,
		BackConcept:  d.BackConcept,
	}
}

func logoInput(d domain.Design) domain.ImageInput {
	if d.Logo != nil {
		return domain.LogoImage(d.Logo.Image)
	}
	return domain.NoImage()
}
