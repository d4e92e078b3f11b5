package input

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action is an editing operation a key can be bound to.
type Action int

const (
	ActionNone Action = iota
	ActionCharacterForward
	ActionCharacterBackward
	ActionWordForward
	ActionWordBackward
	ActionLineStart
	ActionLineEnd
	ActionDeleteCharacterBackward
	ActionDeleteCharacterForward
	ActionDeleteWordBackward
	ActionDeleteWordForward
	ActionDeleteBeforeCursor
	ActionDeleteAfterCursor
	ActionHistoryPrevious
	ActionHistoryNext
	ActionHistorySearch
	ActionSubmit
	ActionCancel
	ActionInterrupt
	ActionEOF
	ActionClearScreen
	ActionPaste
)

var actionNames = map[Action]string{
	ActionNone:                    "None",
	ActionCharacterForward:        "CharacterForward",
	ActionCharacterBackward:       "CharacterBackward",
	ActionWordForward:             "WordForward",
	ActionWordBackward:            "WordBackward",
	ActionLineStart:               "LineStart",
	ActionLineEnd:                 "LineEnd",
	ActionDeleteCharacterBackward: "DeleteCharacterBackward",
	ActionDeleteCharacterForward:  "DeleteCharacterForward",
	ActionDeleteWordBackward:      "DeleteWordBackward",
	ActionDeleteWordForward:       "DeleteWordForward",
	ActionDeleteBeforeCursor:      "DeleteBeforeCursor",
	ActionDeleteAfterCursor:       "DeleteAfterCursor",
	ActionHistoryPrevious:         "HistoryPrevious",
	ActionHistoryNext:             "HistoryNext",
	ActionHistorySearch:           "HistorySearch",
	ActionSubmit:                  "Submit",
	ActionCancel:                  "Cancel",
	ActionInterrupt:               "Interrupt",
	ActionEOF:                     "EOF",
	ActionClearScreen:             "ClearScreen",
	ActionPaste:                   "Paste",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// KeyBinding binds one or more key strings, as reported by tea.KeyMsg.String,
// to an action.
type KeyBinding struct {
	Keys   []string
	Action Action
}

// KeyMap resolves key presses to actions.
type KeyMap struct {
	bindings []KeyBinding
	lookup   map[string]Action
}

func NewKeyMap(bindings []KeyBinding) *KeyMap {
	km := &KeyMap{bindings: bindings}
	km.rebuildLookup()
	return km
}

func (km *KeyMap) rebuildLookup() {
	km.lookup = make(map[string]Action)
	for _, b := range km.bindings {
		for _, key := range b.Keys {
			km.lookup[key] = b.Action
		}
	}
}

// Lookup returns the action bound to msg, or ActionNone.
func (km *KeyMap) Lookup(msg tea.KeyMsg) Action {
	if action, ok := km.lookup[msg.String()]; ok {
		return action
	}
	return ActionNone
}

// SetBinding binds keys to action, replacing any previous binding of those keys.
func (km *KeyMap) SetBinding(action Action, keys ...string) {
	taken := make(map[string]bool, len(keys))
	for _, k := range keys {
		taken[k] = true
	}
	kept := km.bindings[:0:0]
	for _, b := range km.bindings {
		var rest []string
		for _, k := range b.Keys {
			if !taken[k] {
				rest = append(rest, k)
			}
		}
		if len(rest) > 0 {
			kept = append(kept, KeyBinding{Keys: rest, Action: b.Action})
		}
	}
	km.bindings = append(kept, KeyBinding{Keys: keys, Action: action})
	km.rebuildLookup()
}

// DefaultKeyMap is the Emacs-style binding set.
var DefaultKeyMap = NewKeyMap([]KeyBinding{
	{Keys: []string{"right", "ctrl+f"}, Action: ActionCharacterForward},
	{Keys: []string{"left", "ctrl+b"}, Action: ActionCharacterBackward},
	{Keys: []string{"alt+right", "ctrl+right", "alt+f"}, Action: ActionWordForward},
	{Keys: []string{"alt+left", "ctrl+left", "alt+b"}, Action: ActionWordBackward},
	{Keys: []string{"home", "ctrl+a"}, Action: ActionLineStart},
	{Keys: []string{"end", "ctrl+e"}, Action: ActionLineEnd},
	{Keys: []string{"backspace", "ctrl+h"}, Action: ActionDeleteCharacterBackward},
	{Keys: []string{"delete"}, Action: ActionDeleteCharacterForward},
	{Keys: []string{"alt+backspace", "ctrl+w"}, Action: ActionDeleteWordBackward},
	{Keys: []string{"alt+delete", "alt+d"}, Action: ActionDeleteWordForward},
	{Keys: []string{"ctrl+u"}, Action: ActionDeleteBeforeCursor},
	{Keys: []string{"ctrl+k"}, Action: ActionDeleteAfterCursor},
	{Keys: []string{"up", "ctrl+p"}, Action: ActionHistoryPrevious},
	{Keys: []string{"down", "ctrl+n"}, Action: ActionHistoryNext},
	{Keys: []string{"ctrl+r"}, Action: ActionHistorySearch},
	{Keys: []string{"enter"}, Action: ActionSubmit},
	{Keys: []string{"esc", "ctrl+g"}, Action: ActionCancel},
	{Keys: []string{"ctrl+c"}, Action: ActionInterrupt},
	{Keys: []string{"ctrl+d"}, Action: ActionEOF},
	{Keys: []string{"ctrl+l"}, Action: ActionClearScreen},
	{Keys: []string{"ctrl+v"}, Action: ActionPaste},
})
