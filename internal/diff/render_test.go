package diff

import (
	"reflect"
	"testing"
)

func TestRender_SidesAndOrder(t *testing.T) {
	left := Split("shared clause stays here. this clause disappears entirely.")
	right := Split("shared clause stays here. completely fresh material arrives.")

	entries, _ := New().Align(left, right)
	leftSegs, rightSegs := Render(entries)

	wantLeft := []struct {
		op   Op
		text string
	}{
		{OpUnchanged, "shared clause stays here"},
		{OpRemoved, "this clause disappears entirely"},
	}
	if len(leftSegs) != len(wantLeft) {
		t.Fatalf("left side has %d segments, want %d", len(leftSegs), len(wantLeft))
	}
	for i, want := range wantLeft {
		if leftSegs[i].Op != want.op || leftSegs[i].Text != want.text {
			t.Errorf("left segment %d = %s %q, want %s %q",
				i, leftSegs[i].Op, leftSegs[i].Text, want.op, want.text)
		}
	}

	wantRight := []struct {
		op   Op
		text string
	}{
		{OpUnchanged, "shared clause stays here"},
		{OpAdded, "completely fresh material arrives"},
	}
	if len(rightSegs) != len(wantRight) {
		t.Fatalf("right side has %d segments, want %d", len(rightSegs), len(wantRight))
	}
	for i, want := range wantRight {
		if rightSegs[i].Op != want.op || rightSegs[i].Text != want.text {
			t.Errorf("right segment %d = %s %q, want %s %q",
				i, rightSegs[i].Op, rightSegs[i].Text, want.op, want.text)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	left := Split(Normalize("The Secretary shall submit a report. The report shall include all military costs."))
	right := Split(Normalize("The Secretary shall submit a detailed report. The report shall include all military costs."))

	entries, _ := New().Align(left, right)

	firstLeft, firstRight := Render(entries)
	secondLeft, secondRight := Render(entries)

	if !reflect.DeepEqual(firstLeft, secondLeft) || !reflect.DeepEqual(firstRight, secondRight) {
		t.Error("repeated renders of the same alignment must produce identical output")
	}
}

func TestRender_ModifiedCarriesWordDetail(t *testing.T) {
	left := []Chunk{{Index: 0, Text: "the secretary shall submit a complete report on all costs"}}
	right := []Chunk{{Index: 0, Text: "the secretary shall submit a partial report on all costs"}}

	entries, _ := New().Align(left, right)
	leftSegs, rightSegs := Render(entries)

	if leftSegs[0].Op != OpModified {
		t.Fatalf("expected modified segment, got %s", leftSegs[0].Op)
	}
	if len(leftSegs[0].Words) == 0 || len(rightSegs[0].Words) == 0 {
		t.Fatal("modified segments should carry word-level spans")
	}

	var sawDeleted, sawInserted bool
	for _, span := range leftSegs[0].Words {
		switch span.Kind {
		case WordDeleted:
			sawDeleted = true
		case WordInserted:
			sawInserted = true
		}
	}
	if !sawDeleted || !sawInserted {
		t.Errorf("expected both deleted and inserted spans, got %+v", leftSegs[0].Words)
	}
}

func TestRender_UnchangedCarriesNoWordDetail(t *testing.T) {
	text := Split("identical clause on both sides")
	entries, _ := New().Align(text, Split("identical clause on both sides"))

	leftSegs, _ := Render(entries)
	if leftSegs[0].Words != nil {
		t.Errorf("unchanged segment should not carry word spans, got %+v", leftSegs[0].Words)
	}
}

func TestWordDiff_ReconstructsBothSides(t *testing.T) {
	left := "the complete report on costs"
	right := "the partial report on costs"

	spans := WordDiff(left, right)

	var rebuiltLeft, rebuiltRight string
	for _, span := range spans {
		switch span.Kind {
		case WordEqual:
			rebuiltLeft += span.Text
			rebuiltRight += span.Text
		case WordDeleted:
			rebuiltLeft += span.Text
		case WordInserted:
			rebuiltRight += span.Text
		}
	}

	if rebuiltLeft != left {
		t.Errorf("left reconstruction = %q, want %q", rebuiltLeft, left)
	}
	if rebuiltRight != right {
		t.Errorf("right reconstruction = %q, want %q", rebuiltRight, right)
	}
}
