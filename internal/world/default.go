package world

// DefaultID is the id of the built-in world.
const DefaultID = "resume"

// Default returns the built-in four-stage resume world.
func Default() Definition {
	return Definition{
		ID:          DefaultID,
		Title:       "Interactive Resume",
		Description: "Four stages: About, Skills, Projects and Links.",
		Geometry:    DefaultGeometry(),
		Stages: []StageDef{
			{
				Name:    "About",
				Start:   0,
				Length:  1400,
				Tier:    0,
				Signs:   []SignSpec{{X: 300, Label: "About"}},
				Hazards: []RectSpec{{X: 600, W: 30, H: 22}},
			},
			{
				Name:   "Skills",
				Start:  1400,
				Length: 1600,
				Tier:   1,
				Gaps:   []Gap{{X: 420, W: 80}, {X: 900, W: 120}},
				Ledges: []RectSpec{{X: 1200, Elevation: 60, W: 220, H: 20}},
				Signs:  []SignSpec{{X: 250, Label: "Skills"}},
				Hazards: []RectSpec{
					{X: 1050, W: 36, H: 24},
				},
			},
			{
				Name:   "Projects",
				Start:  3000,
				Length: 1800,
				Tier:   2,
				Gaps:   []Gap{{X: 380, W: 140}},
				Movers: []MoverSpec{
					{RectSpec: RectSpec{X: 430, Elevation: 80, W: 120, H: 18}, Amplitude: 40},
				},
				Enemies: []EnemySpec{
					{RectSpec: RectSpec{X: 1100, W: 26, H: 24}, Patrol: 180},
				},
				Ledges:  []RectSpec{{X: 1350, Elevation: 80, W: 180, H: 20}},
				Signs:   []SignSpec{{X: 260, Label: "Projects"}},
				Hazards: []RectSpec{{X: 1520, W: 44, H: 28}},
			},
			{
				Name:   "Links",
				Start:  4800,
				Length: 1200,
				Tier:   3,
				Gaps:   []Gap{{X: 360, W: 90}, {X: 720, W: 110}},
				Signs:  []SignSpec{{X: 120, Label: "Links"}},
				Hazards: []RectSpec{
					{X: 260, W: 34, H: 26},
					{X: 540, W: 40, H: 30},
				},
			},
		},
		// Ground under the finish flag, running past the world end.
		Extras: []RectSpec{{X: -300, W: 400}},
	}
}
