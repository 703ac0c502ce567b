package fluid

// Settings holds the solver coefficients. Changes take effect on the next Step.
type Settings struct {
	Speed      float32 // advection back-trace scale (dt)
	Viscosity  float32 // diffusion blend factor in [0,1]
	Iterations int     // pressure relaxation passes per step
	HeatForce  float32 // buoyancy per unit of ink
}

// DefaultSettings returns the coefficients the interactive viewer starts with.
func DefaultSettings() Settings {
	return Settings{
		Speed:      1,
		Viscosity:  0.01,
		Iterations: 40,
		HeatForce:  0.2,
	}
}

// Settings returns the active coefficients.
func (g *Grid) Settings() Settings { return g.settings }

// Configure replaces all coefficients at once.
func (g *Grid) Configure(s Settings) { g.settings = s }

func (g *Grid) SetSpeed(dt float32) { g.settings.Speed = dt }
func (g *Grid) SetViscosity(v float32) { g.settings.Viscosity = v }
func (g *Grid) SetIterations(n int) { g.settings.Iterations = n }
func (g *Grid) SetHeatForce(force float32) { g.settings.HeatForce = force }
