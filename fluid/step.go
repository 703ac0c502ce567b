package fluid

import "fmt"

// Stage is one pass of the timestep pipeline.
type Stage uint8

const (
	StageAdvect Stage = iota
	StageDiffuse
	StagePressure
	StageBoundary
	StageForce
)

// Pipeline is the fixed stage order of a timestep. Each stage depends on the
// committed output of the one before it.
var Pipeline = [...]Stage{
	StageAdvect,
	StageDiffuse,
	StagePressure,
	StageBoundary,
	StageForce,
}

func (s Stage) String() string {
	switch s {
	case StageAdvect:
		return "advect"
	case StageDiffuse:
		return "diffuse"
	case StagePressure:
		return "pressure"
	case StageBoundary:
		return "boundary"
	case StageForce:
		return "force"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// StageHook is called with each stage immediately before it runs.
type StageHook func(Stage)

// Run executes a single stage against the current buffers and commits its
// result, swapping buffers when the stage writes scratch output.
func (g *Grid) Run(s Stage) {
	switch s {
	case StageAdvect:
		g.advect()
	case StageDiffuse:
		g.diffuse()
	case StagePressure:
		g.applyPressure()
	case StageBoundary:
		g.clearBorders()
	case StageForce:
		g.applyHeatForce()
	}
}

// Step advances the simulation by one timestep.
func (g *Grid) Step() {
	g.StepObserved(nil)
}

// StepObserved advances one timestep, calling hook before every stage.
func (g *Grid) StepObserved(hook StageHook) {
	for _, s := range Pipeline {
		if hook != nil {
			hook(s)
		}
		g.Run(s)
	}
}
