// Package gallery holds the per-session list of generated designs and the
// pure reducer that evolves it.
package gallery

import (
	"mockupstudio/internal/domain"
)

// Status is the coarse progress indicator shown next to the gallery.
type Status string

const (
	StatusIdle        Status = "IDLE"
	StatusGenerating  Status = "GENERATING"
	StatusLoadingView Status = "LOADING_VIEW"
	StatusError       Status = "ERROR"
	StatusSuccess     Status = "SUCCESS"
)

// State is an immutable snapshot. Designs are ordered newest batch first.
// Status follows the batch; Loading lists designs with a single-design
// operation in flight.
type State struct {
	Designs []domain.Design `json:"designs"`
	Status  Status          `json:"status"`
	Message string          `json:"message,omitempty"`
	Loading []string        `json:"loading,omitempty"`
}

// Event is a state transition request.
type Event interface {
	isEvent()
}

type (
	// BatchStarted marks the start of an initial generation.
	BatchStarted struct{}
	// BatchSucceeded prepends a new batch.
	BatchSucceeded struct{ Designs []domain.Design }
	// BatchFailed records a batch in which nothing was produced.
	BatchFailed struct{ Message string }
	// ViewLoading marks a single-design operation in flight.
	ViewLoading struct{ DesignID string }
	// ViewsMerged folds a partial view set into a design.
	ViewsMerged struct {
		DesignID string
		Patch    domain.ViewSet
	}
	// DesignReplaced swaps a design wholesale, used by regeneration paths.
	DesignReplaced struct{ Design domain.Design }
	// DesignRemoved drops a design from the gallery.
	DesignRemoved struct{ DesignID string }
	// ViewSettled ends the single-design operation on DesignID.
	ViewSettled struct{ DesignID string }
)

func (BatchStarted) isEvent()   {}
func (BatchSucceeded) isEvent() {}
func (BatchFailed) isEvent()    {}
func (ViewLoading) isEvent()    {}
func (ViewsMerged) isEvent()    {}
func (DesignReplaced) isEvent() {}
func (DesignRemoved) isEvent()  {}
func (ViewSettled) isEvent()    {}

// Reduce applies ev to s and returns the next state. The input is never
// modified; unknown design ids leave the designs untouched.
func Reduce(s State, ev Event) State {
	next := State{Designs: s.Designs, Status: s.Status, Message: s.Message, Loading: s.Loading}
	switch e := ev.(type) {
	case BatchStarted:
		next.Status = StatusGenerating
		next.Message = ""
	case BatchSucceeded:
		designs := make([]domain.Design, 0, len(e.Designs)+len(s.Designs))
		designs = append(designs, e.Designs...)
		designs = append(designs, s.Designs...)
		next.Designs = designs
		next.Status = StatusSuccess
		next.Message = ""
	case BatchFailed:
		next.Status = StatusError
		next.Message = e.Message
	case ViewLoading:
		next.Loading = withLoading(s.Loading, e.DesignID, true)
		next.Status = viewStatus(s.Status, next.Loading)
	case ViewsMerged:
		next.Designs = mapDesign(s.Designs, e.DesignID, func(d domain.Design) domain.Design {
			d.Views = d.Views.Merge(e.Patch)
			return d
		})
	case DesignReplaced:
		next.Designs = mapDesign(s.Designs, e.Design.ID, func(domain.Design) domain.Design {
			return e.Design
		})
	case DesignRemoved:
		designs := make([]domain.Design, 0, len(s.Designs))
		for _, d := range s.Designs {
			if d.ID != e.DesignID {
				designs = append(designs, d)
			}
		}
		next.Designs = designs
	case ViewSettled:
		next.Loading = withLoading(s.Loading, e.DesignID, false)
		next.Status = viewStatus(s.Status, next.Loading)
	}
	return next
}

// viewStatus derives the status after a single-design event. A running batch
// and a failed batch keep their status; otherwise it reflects Loading.
func viewStatus(current Status, loading []string) Status {
	switch {
	case current == StatusGenerating, current == StatusError:
		return current
	case len(loading) > 0:
		return StatusLoadingView
	default:
		return StatusIdle
	}
}

func withLoading(ids []string, id string, on bool) []string {
	out := make([]string, 0, len(ids)+1)
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	if on {
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsLoading reports whether a single-design operation runs on id.
func (s State) IsLoading(id string) bool {
	for _, existing := range s.Loading {
		if existing == id {
			return true
		}
	}
	return false
}

func mapDesign(designs []domain.Design, id string, fn func(domain.Design) domain.Design) []domain.Design {
	out := make([]domain.Design, len(designs))
	copy(out, designs)
	for i := range out {
		if out[i].ID == id {
			out[i] = fn(out[i])
		}
	}
	return out
}

// Find returns the design with id.
func (s State) Find(id string) (domain.Design, bool) {
	for _, d := range s.Designs {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Design{}, false
}
