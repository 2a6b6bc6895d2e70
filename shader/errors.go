package shader

import "fmt"

// Stages a compilation can fail in.
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
	StageLink     = "link"
)

// CompileError carries the failing stage and the driver's diagnostic text.
// A program whose compilation produced one is permanently invalid.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader %s stage failed: %s", e.Stage, e.Log)
}
