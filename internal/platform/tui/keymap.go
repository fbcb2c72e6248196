package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
)

// nudgeKeys move the crosshair one cell when no mouse is available.
var nudgeKeys = map[string]core.Vec2{
	"w": core.V(0, -core.CellHeight),
	"s": core.V(0, core.CellHeight),
	"a": core.V(-core.CellWidth, 0),
	"d": core.V(core.CellWidth, 0),
}

// KeyMap translates Bubble Tea key and mouse messages to trainer actions.
// It is built from the persisted keybind record so rebinding needs no code.
type KeyMap struct {
	bindings map[core.Action]key.Binding
	mouse    map[tea.MouseButton]core.Action
}

// NewKeyMap builds bindings from a keybind record.
func NewKeyMap(kb config.Keybinds) KeyMap {
	km := KeyMap{
		bindings: make(map[core.Action]key.Binding),
		mouse:    make(map[tea.MouseButton]core.Action),
	}

	for _, a := range core.Actions() {
		var keys []string
		for _, k := range kb.Keys(a) {
			switch k {
			case config.MouseLeft:
				if _, taken := km.mouse[tea.MouseButtonLeft]; !taken && a != core.ActionRestart {
					km.mouse[tea.MouseButtonLeft] = a
				}
			case config.MouseRight:
				if _, taken := km.mouse[tea.MouseButtonRight]; !taken && a != core.ActionRestart {
					km.mouse[tea.MouseButtonRight] = a
				}
			case "space", " ":
				// Bubble Tea reports the space bar as " ".
				keys = append(keys, " ", "space")
			default:
				keys = append(keys, k)
			}
		}

		help := strings.Join(kb.Keys(a), "/")
		km.bindings[a] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(help, actionHelp(a)),
		)
	}

	return km
}

// DefaultKeyMap returns bindings for the built-in keybinds.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultKeybinds())
}

// Action resolves a key press to the first gameplay action bound to it.
// Restart shares its key with reload and is only checked through Matches.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	for _, a := range core.Actions() {
		if a == core.ActionRestart {
			continue
		}
		if b, ok := k.bindings[a]; ok && key.Matches(msg, b) {
			return a
		}
	}
	return core.ActionNone
}

// Matches reports whether msg is bound to the action.
func (k KeyMap) Matches(msg tea.KeyMsg, a core.Action) bool {
	b, ok := k.bindings[a]
	return ok && key.Matches(msg, b)
}

// MouseAction returns the action bound to a mouse button.
func (k KeyMap) MouseAction(b tea.MouseButton) core.Action {
	if a, ok := k.mouse[b]; ok {
		return a
	}
	return core.ActionNone
}

// Binding returns the binding for an action.
func (k KeyMap) Binding(a core.Action) key.Binding {
	return k.bindings[a]
}

// Nudge returns the crosshair offset for a movement key.
func (k KeyMap) Nudge(msg tea.KeyMsg) (core.Vec2, bool) {
	v, ok := nudgeKeys[msg.String()]
	return v, ok
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.bindings[core.ActionFire],
		k.bindings[core.ActionReload],
		k.bindings[core.ActionPause],
		k.bindings[core.ActionQuit],
	}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.bindings[core.ActionFire], k.bindings[core.ActionADS], k.bindings[core.ActionReload], k.bindings[core.ActionPause]},
		{k.bindings[core.ActionWeapon1], k.bindings[core.ActionWeapon2], k.bindings[core.ActionWeapon3], k.bindings[core.ActionWeapon4]},
		{k.bindings[core.ActionSensUp], k.bindings[core.ActionSensDown], k.bindings[core.ActionQuit]},
	}
}

func actionHelp(a core.Action) string {
	switch a {
	case core.ActionFire:
		return "fire"
	case core.ActionADS:
		return "scope"
	case core.ActionReload:
		return "reload"
	case core.ActionPause:
		return "pause"
	case core.ActionWeapon1:
		return "standard"
	case core.ActionWeapon2:
		return "vandal"
	case core.ActionWeapon3:
		return "sheriff"
	case core.ActionWeapon4:
		return "operator"
	case core.ActionSensUp:
		return "sens +"
	case core.ActionSensDown:
		return "sens -"
	case core.ActionRestart:
		return "restart"
	case core.ActionQuit:
		return "quit"
	default:
		return a.String()
	}
}

// menuKeyMap defines the key bindings shared by the menu and scoreboard.
type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Scores key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Scores, k.Back, k.Quit},
	}
}

func defaultMenuKeyMap() menuKeyMap {
	return menuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("left/right", "difficulty"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("right/l", "harder"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "stats"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
