package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Colony
	ActionSpawn      // Spawn a colonist at the base
	ActionMove       // Send the selected colonist to a cell
	ActionDig        // Break a wall
	ActionNextActor  // Select the next colonist
	ActionWait       // Let time pass (terminal)
	ActionTogglePause
	ActionDumpMap // Write a debug dump of the cave

	// Meta / UI
	ActionQuit
	ActionZoomIn  // Zoom in (increase tile size)
	ActionZoomOut // Zoom out (decrease tile size)
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "space", "mouse_left", "dig").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
// Ebiten's just-pressed helpers and line-buffered terminal input already
// debounce, so this is a plain copy for now.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	"space": ActionSpawn,
	"spawn": ActionSpawn,

	"mouse_left": ActionMove,
	"move":       ActionMove,
	"m":          ActionMove,

	"mouse_right": ActionDig,
	"dig":         ActionDig,
	"d":           ActionDig,

	"tab":  ActionNextActor,
	"next": ActionNextActor,

	"wait": ActionWait,
	"w":    ActionWait,

	"p":     ActionTogglePause,
	"pause": ActionTogglePause,

	"f9":   ActionDumpMap,
	"dump": ActionDumpMap,

	"quit":   ActionQuit,
	"q":      ActionQuit,
	"escape": ActionQuit,

	// Zoom (fixed bindings, not rebindable)
	"=":               ActionZoomIn,
	"+":               ActionZoomIn,
	"numpad_add":      ActionZoomIn,
	"-":               ActionZoomOut,
	"numpad_subtract": ActionZoomOut,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionSpawn:
		return "Spawn"
	case ActionMove:
		return "Move"
	case ActionDig:
		return "Dig"
	case ActionNextActor:
		return "Next Colonist"
	case ActionWait:
		return "Wait"
	case ActionTogglePause:
		return "Pause"
	case ActionDumpMap:
		return "Dump Map"
	case ActionQuit:
		return "Quit"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help text doesn't shuffle between calls
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single code.
// Mouse buttons stay bound to Move and Dig.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if c == "mouse_left" || c == "mouse_right" {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && code != "mouse_left" && code != "mouse_right" {
		bindings[code] = action
	}
}
