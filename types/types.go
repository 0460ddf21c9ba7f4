package types

// ---- Gestures ----

// Gesture is a gesture code. The gesture driver reports raw codes; the UI
// remaps the four directional codes by display orientation before acting on
// them, so a Gesture is either "raw" (straight off the sensor) or "logical"
// (post-remap) depending on where it is in the pipeline.
type Gesture uint8

const (
	GestureNone Gesture = iota
	GestureUp
	GestureDown
	GestureLeft
	GestureRight
	GestureForward  // towards the panel; acts as "dismiss"
	GestureBackward // away from the panel
	GestureClockwise
	GestureCounterClockwise
	GestureWave
)

func (g Gesture) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureUp:
		return "up"
	case GestureDown:
		return "down"
	case GestureLeft:
		return "left"
	case GestureRight:
		return "right"
	case GestureForward:
		return "forward"
	case GestureBackward:
		return "backward"
	case GestureClockwise:
		return "clockwise"
	case GestureCounterClockwise:
		return "counterclockwise"
	case GestureWave:
		return "wave"
	default:
		return "INVALID"
	}
}

// Directional reports whether g is one of the four swipe directions that are
// subject to orientation remapping.
func (g Gesture) Directional() bool {
	switch g {
	case GestureUp, GestureDown, GestureLeft, GestureRight:
		return true
	}
	return false
}

// ---- Orientation ----

// Orientation is one of the two supported display rotations. The values match
// the rotation indexes the panel driver expects (0 and 2, i.e. 180 degrees
// apart).
type Orientation uint8

const (
	OrientationBase    Orientation = 0
	OrientationFlipped Orientation = 2
)

// Toggle returns the other orientation.
func (o Orientation) Toggle() Orientation {
	if o == OrientationBase {
		return OrientationFlipped
	}
	return OrientationBase
}

func (o Orientation) String() string {
	if o == OrientationBase {
		return "base"
	}
	return "flipped"
}

// ---- Screens ----

// ScreenID selects one screen variant. ID 0 is the reserved setup screen and
// is excluded from swipe cycling; content screens occupy [1, Count-1]. The
// low-battery override screen has a dedicated identity outside the cycle.
type ScreenID uint8

const (
	ScreenSetup   ScreenID = 0
	ScreenLowBatt ScreenID = 0xFF
)
