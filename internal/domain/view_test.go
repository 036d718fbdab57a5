package domain

import "testing"

func TestViewSetMergeNeverClearsPopulatedSlots(t *testing.T) {
	front := &Image{MIMEType: "image/png", Data: []byte("front")}
	right := &Image{MIMEType: "image/png", Data: []byte("right")}

	base := ViewSet{Front: front}
	merged := base.Merge(ViewSet{Right: right})

	if merged.Front != front {
		t.Fatalf("front was replaced: %+v", merged.Front)
	}
	if merged.Right != right {
		t.Fatalf("right not merged: %+v", merged.Right)
	}
	if base.Right != nil {
		t.Fatalf("merge mutated receiver")
	}
	if got := merged.Missing(RotationViews...); len(got) != 2 || got[0] != ViewBack || got[1] != ViewLeft {
		t.Fatalf("unexpected missing views: %v", got)
	}
}

func TestParseView(t *testing.T) {
	tests := []struct {
		raw  string
		want View
		ok   bool
	}{
		{raw: "front", want: ViewFront, ok: true},
		{raw: " LEFT ", want: ViewLeft, ok: true},
		{raw: "flatFront", want: ViewFlatFront, ok: true},
		{raw: "print-back", want: ViewFlatBack, ok: true},
		{raw: "top", ok: false},
	}
	for _, tc := range tests {
		got, ok := ParseView(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseView(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestViewAngles(t *testing.T) {
	want := map[View]int{ViewFront: 0, ViewRight: 90, ViewBack: 180, ViewLeft: 270, ViewFlatFront: -1}
	for v, angle := range want {
		if got := v.Angle(); got != angle {
			t.Fatalf("%s angle = %d, want %d", v, got, angle)
		}
	}
}

func TestImageInputVariants(t *testing.T) {
	img := NewImage("", []byte{1, 2, 3})
	if img.MIMEType != DefaultImageMIME {
		t.Fatalf("expected default mime, got %q", img.MIMEType)
	}

	if _, ok := NoImage().Image(); ok {
		t.Fatalf("NoImage should carry no image")
	}
	logo := LogoImage(img)
	if logo.Kind() != InputLogo {
		t.Fatalf("unexpected logo input kind: %v", logo.Kind())
	}
	ref := ReferenceImage(img)
	got, ok := ref.Image()
	if !ok || ref.Kind() != InputReference || string(got.Data) != string(img.Data) {
		t.Fatalf("reference input mismatch: %+v", got)
	}
}

func TestGenderFlip(t *testing.T) {
	if GenderMale.Flip() != GenderFemale || GenderFemale.Flip() != GenderMale {
		t.Fatalf("flip is not an involution")
	}
}
