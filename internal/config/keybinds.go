package config

import (
	"sort"

	"github.com/vovakirdan/traingun/internal/core"
)

// Mouse button tokens usable in a keybind list next to key names.
const (
	MouseLeft  = "mouse:left"
	MouseRight = "mouse:right"
)

// Keybinds maps action names (see core.Action) to key names as Bubble Tea
// reports them ("r", "esc", "up", "space") or mouse tokens.
type Keybinds map[string][]string

// DefaultKeybinds returns the built-in bindings.
func DefaultKeybinds() Keybinds {
	return Keybinds{
		core.ActionFire.String():     {MouseLeft, "space"},
		core.ActionADS.String():      {MouseRight, "z"},
		core.ActionReload.String():   {"r"},
		core.ActionPause.String():    {"esc", "p"},
		core.ActionWeapon1.String():  {"1"},
		core.ActionWeapon2.String():  {"2"},
		core.ActionWeapon3.String():  {"3"},
		core.ActionWeapon4.String():  {"4"},
		core.ActionSensUp.String():   {"up"},
		core.ActionSensDown.String(): {"down"},
		core.ActionRestart.String():  {"r"},
		core.ActionQuit.String():     {"q", "ctrl+c"},
	}
}

// Merge returns the defaults overlaid with overrides. Unknown action names
// and empty key lists in overrides are ignored; the dropped names are returned.
func (k Keybinds) Merge(overrides Keybinds) (Keybinds, []string) {
	out := make(Keybinds, len(k))
	for action, keys := range k {
		out[action] = append([]string(nil), keys...)
	}

	var dropped []string
	for action, keys := range overrides {
		if _, ok := core.ParseAction(action); !ok || len(keys) == 0 {
			dropped = append(dropped, action)
			continue
		}
		out[action] = append([]string(nil), keys...)
	}
	sort.Strings(dropped)
	return out, dropped
}

// Keys returns the keys bound to an action.
func (k Keybinds) Keys(a core.Action) []string {
	return k[a.String()]
}

// Action resolves a key name to the first action bound to it, in action order.
// The restart action is skipped since it shares a key with reload and only
// applies on the result screen.
func (k Keybinds) Action(key string) (core.Action, bool) {
	for _, a := range core.Actions() {
		if a == core.ActionRestart {
			continue
		}
		for _, bound := range k[a.String()] {
			if bound == key {
				return a, true
			}
		}
	}
	return core.ActionNone, false
}
