package domain

import "time"

// Design is one generated artifact set: a concept rendered on a garment,
// plus every view generated for it so far.
type Design struct {
	ID          string      `json:"id"`
	Concept     string      `json:"concept"`
	BackConcept string      `json:"back_concept,omitempty"`
	Style       string      `json:"style"`
	Apparel     Apparel     `json:"apparel"`
	Logo        *LogoConfig `json:"logo,omitempty"`
	Gender      Gender      `json:"model_gender"`
	CreatedAt   time.Time   `json:"created_at"`
	Views       ViewSet     `json:"views"`
}

// Clone returns a copy whose view set and logo can be modified without
// affecting d. Image bytes are shared; they are never mutated in place.
func (d Design) Clone() Design {
	out := d
	if d.Logo != nil {
		logo := *d.Logo
		out.Logo = &logo
	}
	return out
}
