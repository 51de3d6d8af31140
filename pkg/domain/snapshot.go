package domain

// Snapshot is the complete read model of an editing session.
// Hidden is derived at the moment the snapshot is taken and is unordered.
type Snapshot struct {
	GridSize    int          `json:"grid_size"`
	Inputs      []Coord      `json:"inputs"`
	Outputs     []Coord      `json:"outputs"`
	Hidden      []Coord      `json:"hidden"`
	Connections []Connection `json:"connections"`
	Mode        Mode         `json:"mode"`
}

// Cell classifies a single grid point for highlighting.
// Input and Output may both be true; Hidden excludes both.
type Cell struct {
	Coord    Coord `json:"coord"`
	Input    bool  `json:"input"`
	Output   bool  `json:"output"`
	Hidden   bool  `json:"hidden"`
	Selected bool  `json:"selected"`
}

// Empty reports whether the cell carries no node and no selection.
func (c Cell) Empty() bool {
	return !c.Input && !c.Output && !c.Hidden && !c.Selected
}
