package domain

import "testing"

func TestStageValid(t *testing.T) {
	valid := []Stage{StageIntroducedHouse, StageReportedHouse, StageEngrossedHouse, StageReceivedSenate, StageEnrolled}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected stage %q to be valid", s)
		}
	}

	invalid := []Stage{"", "xx", "IH", "house"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("expected stage %q to be invalid", s)
		}
	}
}

func TestSectionKey(t *testing.T) {
	s := Section{BillID: "bill-abc", Stage: StageIntroducedHouse, Number: 101}
	if got := s.Key(); got != "bill-abc/ih/101" {
		t.Errorf("Key() = %q", got)
	}
}

func TestBillStages(t *testing.T) {
	var b Bill

	if b.HasStage(StageIntroducedHouse) {
		t.Error("empty bill should have no stages")
	}

	b.AddStage(StageIntroducedHouse)
	b.AddStage(StageReportedHouse)
	b.AddStage(StageIntroducedHouse) // duplicate

	if len(b.Stages) != 2 {
		t.Errorf("expected 2 stages, got %d", len(b.Stages))
	}
	if !b.HasStage(StageReportedHouse) {
		t.Error("expected rh stage to be recorded")
	}
}
