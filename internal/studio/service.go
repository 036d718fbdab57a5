package studio

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/gallery"
	"mockupstudio/internal/infra"
)

// batchLock is the gallery lock key held while an initial batch runs. Design
// ids are uuids so it cannot collide with one.
const batchLock = "batch"

// BatchFailedMessage is shown to the user when a batch produced nothing.
const BatchFailedMessage = "Failed to generate designs. Please try again."

// Service applies Studio operations to session galleries. Every design
// operation holds that design's exclusive lock for its whole duration.
type Service struct {
	studio   *Studio
	sessions *gallery.Sessions
	logger   *infra.Logger
}

func NewService(st *Studio, sessions *gallery.Sessions, logger *infra.Logger) *Service {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		logger = &discard
	}
	return &Service{studio: st, sessions: sessions, logger: logger}
}

// Sessions exposes the registry the service operates on.
func (s *Service) Sessions() *gallery.Sessions {
	return s.sessions
}

// Generate runs an initial batch and prepends its designs to the session.
func (s *Service) Generate(ctx context.Context, sessionID string, req InitialRequest) (gallery.State, error) {
	g, err := s.sessions.Get(sessionID)
	if err != nil {
		return gallery.State{}, err
	}
	if err := req.Validate(); err != nil {
		return g.Snapshot(), err
	}
	release, ok := g.Acquire(batchLock)
	if !ok {
		return g.Snapshot(), ErrDesignBusy
	}
	defer release()

	g.Dispatch(gallery.BatchStarted{})
	designs, err := s.studio.GenerateInitial(ctx, req)
	if err != nil {
		if errors.Is(err, ErrBatchFailed) {
			return g.Dispatch(gallery.BatchFailed{Message: BatchFailedMessage}), err
		}
		return g.Dispatch(gallery.BatchFailed{Message: err.Error()}), err
	}
	return g.Dispatch(gallery.BatchSucceeded{Designs: designs}), nil
}

// CompleteRotation fills the missing modeled views of a design. view is the
// slot the client is showing; it anchors the rotation when front is empty.
func (s *Service) CompleteRotation(ctx context.Context, sessionID, designID string, view domain.View, effect domain.TextEffect) (domain.Design, error) {
	return s.withDesign(sessionID, designID, func(d domain.Design) gallery.Event {
		patch := s.studio.CompleteRotation(ctx, d, view, effect)
		return gallery.ViewsMerged{DesignID: d.ID, Patch: patch}
	})
}

// GeneratePrintFiles adds flat print artwork to a design.
func (s *Service) GeneratePrintFiles(ctx context.Context, sessionID, designID string, effect domain.TextEffect) (domain.Design, error) {
	return s.withDesign(sessionID, designID, func(d domain.Design) gallery.Event {
		patch := s.studio.GeneratePrintFiles(ctx, d, effect)
		return gallery.ViewsMerged{DesignID: d.ID, Patch: patch}
	})
}

// ApplyEffect regenerates one view with a text effect.
func (s *Service) ApplyEffect(ctx context.Context, sessionID, designID string, view domain.View, effect domain.TextEffect) (domain.Design, error) {
	if !view.Valid() {
		return domain.Design{}, ErrInvalidView
	}
	return s.withDesign(sessionID, designID, func(d domain.Design) gallery.Event {
		patch := s.studio.ApplyEffect(ctx, d, view, effect)
		return gallery.ViewsMerged{DesignID: d.ID, Patch: patch}
	})
}

// SwapGender switches the model of a design. The bool reports whether the
// swap happened; on failure the design is unchanged.
func (s *Service) SwapGender(ctx context.Context, sessionID, designID string, view domain.View, effect domain.TextEffect) (domain.Design, bool, error) {
	if !view.Valid() || view.IsFlat() {
		return domain.Design{}, false, ErrInvalidView
	}
	swapped := false
	d, err := s.withDesign(sessionID, designID, func(d domain.Design) gallery.Event {
		next, ok := s.studio.SwapGender(ctx, d, view, effect)
		if !ok {
			return nil
		}
		swapped = true
		return gallery.DesignReplaced{Design: next}
	})
	return d, swapped, err
}

// Remove drops a design from the session.
func (s *Service) Remove(sessionID, designID string) error {
	g, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	release, ok := g.Acquire(designID)
	if !ok {
		return ErrDesignBusy
	}
	defer release()
	if _, err := g.Design(designID); err != nil {
		return err
	}
	g.Dispatch(gallery.DesignRemoved{DesignID: designID})
	return nil
}

// Design returns one design of a session.
func (s *Service) Design(sessionID, designID string) (domain.Design, error) {
	g, err := s.sessions.Get(sessionID)
	if err != nil {
		return domain.Design{}, err
	}
	return g.Design(designID)
}

func (s *Service) withDesign(sessionID, designID string, op func(domain.Design) gallery.Event) (domain.Design, error) {
	g, err := s.sessions.Get(sessionID)
	if err != nil {
		return domain.Design{}, err
	}
	release, ok := g.Acquire(designID)
	if !ok {
		return domain.Design{}, ErrDesignBusy
	}
	defer release()

	d, err := g.Design(designID)
	if err != nil {
		return domain.Design{}, err
	}
	g.Dispatch(gallery.ViewLoading{DesignID: designID})
	defer g.Dispatch(gallery.ViewSettled{DesignID: designID})

	if ev := op(d); ev != nil {
		g.Dispatch(ev)
	}
	return g.Design(designID)
}
