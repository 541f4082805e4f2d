package core

// Action represents a semantic user intent, abstracted from physical keys
// and mouse clicks.
type Action int

const (
	ActionNone        Action = iota
	ActionStartParty         // S, Enter on the start button, click
	ActionToggleAudio        // M, Space, Enter on the music button, click
	ActionFocusNext          // Tab, Right - move button focus
	ActionFocusPrev          // Shift+Tab, Left
	ActionPress              // Enter - press the focused button
	ActionHelp               // ? - toggle full help
	ActionQuit               // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStartParty:
		return "StartParty"
	case ActionToggleAudio:
		return "ToggleAudio"
	case ActionFocusNext:
		return "FocusNext"
	case ActionFocusPrev:
		return "FocusPrev"
	case ActionPress:
		return "Press"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
