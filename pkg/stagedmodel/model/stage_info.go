package model

// StageInfo describes a declared training stage.
type StageInfo struct {
	Name string
	// Position is the place of the stage in the declared list, starting at 0.
	Position int
	// Skipped is true when the stage comes before the resume point and does not run.
	Skipped bool
}

var (
	StartStage = &StageInfo{Name: "start", Position: -1}
	EndStage   = &StageInfo{Name: "end", Position: -1}
)
