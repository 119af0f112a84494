package domain

// Bill groups the sections and amendments ingested for one piece of
// legislation across its stages.
type Bill struct {
	Tracked
	Number   string  `json:"number"` // e.g. "HR8070"
	Congress int     `json:"congress,omitempty"`
	Title    string  `json:"title,omitempty"`
	Stages   []Stage `json:"stages,omitempty"` // Stages with ingested sections, in ingest order
}

// HasStage reports whether sections for the given stage have been ingested.
func (b *Bill) HasStage(stage Stage) bool {
	for _, s := range b.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// AddStage records a stage if not already present.
func (b *Bill) AddStage(stage Stage) {
	if !b.HasStage(stage) {
		b.Stages = append(b.Stages, stage)
	}
}
