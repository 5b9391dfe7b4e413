package core

// Color is the drawing role of a screen cell. The platform maps each role
// to a concrete terminal color, so games never name palette entries.
type Color uint8

const (
	ColorDefault Color = iota
	ColorSky
	ColorBird
	ColorObstacle
	ColorGround
	ColorScore
	ColorBurst
	ColorText
)

var colorNames = [...]string{
	ColorDefault:  "default",
	ColorSky:      "sky",
	ColorBird:     "bird",
	ColorObstacle: "obstacle",
	ColorGround:   "ground",
	ColorScore:    "score",
	ColorBurst:    "burst",
	ColorText:     "text",
}

// String returns the role name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}
