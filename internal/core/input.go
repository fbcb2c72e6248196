package core

// Action represents a semantic trainer action, abstracted from physical input.
// This allows the engine to work with intents rather than raw keys or buttons.
type Action int

const (
	ActionNone     Action = iota
	ActionFire            // Left click - shoot
	ActionADS             // Right click - toggle scope
	ActionReload          // R - reload magazine
	ActionPause           // Esc - pause/resume
	ActionWeapon1         // 1 - Standard
	ActionWeapon2         // 2 - Vandal
	ActionWeapon3         // 3 - Sheriff
	ActionWeapon4         // 4 - Operator
	ActionSensUp          // Up - raise sensitivity one step
	ActionSensDown        // Down - lower sensitivity one step
	ActionRestart         // R after a run - play the same mode again
	ActionQuit            // Q, Ctrl+C - leave the session
)

// String returns the persisted name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionFire:
		return "fire"
	case ActionADS:
		return "ads"
	case ActionReload:
		return "reload"
	case ActionPause:
		return "pause"
	case ActionWeapon1:
		return "weapon1"
	case ActionWeapon2:
		return "weapon2"
	case ActionWeapon3:
		return "weapon3"
	case ActionWeapon4:
		return "weapon4"
	case ActionSensUp:
		return "sens_up"
	case ActionSensDown:
		return "sens_down"
	case ActionRestart:
		return "restart"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Actions lists every bindable action in display order.
func Actions() []Action {
	return []Action{
		ActionFire, ActionADS, ActionReload, ActionPause,
		ActionWeapon1, ActionWeapon2, ActionWeapon3, ActionWeapon4,
		ActionSensUp, ActionSensDown, ActionRestart, ActionQuit,
	}
}

// ParseAction returns the action with the given persisted name.
func ParseAction(name string) (Action, bool) {
	for _, a := range Actions() {
		if a.String() == name {
			return a, true
		}
	}
	return ActionNone, false
}
