package controller

import "github.com/gdamore/tcell/v2"

// Defines lowercase letters as keys so they can share the KeyEvent maps
// with tcell's own key constants.
const (
	KeyA tcell.Key = iota + 97
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// Defines uppercase letters as keys.
const (
	KeyShiftA tcell.Key = iota + 65
	KeyShiftB
	KeyShiftC
	KeyShiftD
	KeyShiftE
	KeyShiftF
	KeyShiftG
	KeyShiftH
	KeyShiftI
	KeyShiftJ
	KeyShiftK
	KeyShiftL
	KeyShiftM
	KeyShiftN
	KeyShiftO
	KeyShiftP
	KeyShiftQ
	KeyShiftR
	KeyShiftS
	KeyShiftT
	KeyShiftU
	KeyShiftV
	KeyShiftW
	KeyShiftX
	KeyShiftY
	KeyShiftZ
)

// KeySlash triggers the search field.
const KeySlash tcell.Key = 47

// initKeys registers display names for the letter keys so headers can show
// them like tcell's named keys.
func initKeys() {
	for key := KeyA; key <= KeyZ; key++ {
		tcell.KeyNames[key] = string(rune(key))
	}

	for key := KeyShiftA; key <= KeyShiftZ; key++ {
		tcell.KeyNames[key] = string(rune(key))
	}

	tcell.KeyNames[KeySlash] = "/"
}

// AsKey converts rune-based events to their key constant so every
// keypress can be looked up in one map.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}

	return tcell.Key(evt.Rune())
}
