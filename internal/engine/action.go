package engine

// Action is a command accepted from the UI shell or tray. It is a
// closed enum: unknown action strings fail at parse time instead of
// silently doing nothing at dispatch time.
type Action int

const (
	// ActionReset clears all widget offsets.
	ActionReset Action = iota
	// ActionToggleEdit flips widget edit mode. Ignored in try-on mode.
	ActionToggleEdit
	// ActionShutter starts the capture countdown. Only meaningful in
	// try-on mode; a no-op while a countdown is already running.
	ActionShutter
)

var actionNames = map[Action]string{
	ActionReset:      "reset",
	ActionToggleEdit: "toggle-edit",
	ActionShutter:    "shutter",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction maps a wire name to an Action. The second return value is
// false for unrecognized names.
func ParseAction(s string) (Action, bool) {
	for a, name := range actionNames {
		if name == s {
			return a, true
		}
	}
	return 0, false
}
