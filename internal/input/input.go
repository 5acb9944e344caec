// Package input maps GLFW keys and mouse buttons onto viewer actions and
// tracks per-frame press and release edges.
package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical viewer command, independent of the physical binding.
type Action uint8

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionSprint
	ActionPause
	ActionToggleWireframe
	ActionToggleDebug
	ActionToggleNoClip
	ActionMouseLeft
	ActionMouseRight
	ActionCount
)

// actionSet is a bitset over Action.
type actionSet uint32

func (s actionSet) has(a Action) bool { return s&(1<<a) != 0 }

func (s *actionSet) set(a Action, on bool) {
	if on {
		*s |= 1 << a
	} else {
		*s &^= 1 << a
	}
}

var defaultKeys = map[glfw.Key][]Action{
	glfw.KeyW:           {ActionMoveForward},
	glfw.KeyUp:          {ActionMoveForward},
	glfw.KeyS:           {ActionMoveBackward},
	glfw.KeyDown:        {ActionMoveBackward},
	glfw.KeyA:           {ActionMoveLeft},
	glfw.KeyLeft:        {ActionMoveLeft},
	glfw.KeyD:           {ActionMoveRight},
	glfw.KeyRight:       {ActionMoveRight},
	glfw.KeySpace:       {ActionMoveUp},
	glfw.KeyLeftShift:   {ActionMoveDown},
	glfw.KeyLeftControl: {ActionSprint},
	glfw.KeyEscape:      {ActionPause},
	glfw.KeyF:           {ActionToggleWireframe},
	glfw.KeyF3:          {ActionToggleDebug},
	glfw.KeyN:           {ActionToggleNoClip},
}

var defaultButtons = map[glfw.MouseButton][]Action{
	glfw.MouseButtonLeft:  {ActionMouseLeft},
	glfw.MouseButtonRight: {ActionMouseRight},
}

// Manager holds the bindings and the action state. Callbacks may arrive on
// any goroutine; queries are safe alongside them.
type Manager struct {
	mu      sync.RWMutex
	keys    map[glfw.Key][]Action
	buttons map[glfw.MouseButton][]Action

	held     actionSet
	pressed  actionSet // since the last EndFrame
	released actionSet
}

// New returns a Manager with the default bindings.
func New() *Manager {
	m := &Manager{
		keys:    make(map[glfw.Key][]Action, len(defaultKeys)),
		buttons: make(map[glfw.MouseButton][]Action, len(defaultButtons)),
	}
	for k, as := range defaultKeys {
		m.keys[k] = append([]Action(nil), as...)
	}
	for b, as := range defaultButtons {
		m.buttons[b] = append([]Action(nil), as...)
	}
	return m
}

// BindKey adds a binding; a key may drive several actions.
func (m *Manager) BindKey(key glfw.Key, a Action) {
	if a >= ActionCount {
		return
	}
	m.mu.Lock()
	m.keys[key] = append(m.keys[key], a)
	m.mu.Unlock()
}

// UnbindKey drops every binding of key.
func (m *Manager) UnbindKey(key glfw.Key) {
	m.mu.Lock()
	delete(m.keys, key)
	m.mu.Unlock()
}

// BindMouseButton adds a mouse binding.
func (m *Manager) BindMouseButton(button glfw.MouseButton, a Action) {
	if a >= ActionCount {
		return
	}
	m.mu.Lock()
	m.buttons[button] = append(m.buttons[button], a)
	m.mu.Unlock()
}

// HandleKey records a key event. Repeats count as held.
func (m *Manager) HandleKey(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(m.keys[key], action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButton records a mouse button event.
func (m *Manager) HandleMouseButton(button glfw.MouseButton, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(m.buttons[button], action == glfw.Press)
}

func (m *Manager) apply(actions []Action, down bool) {
	for _, a := range actions {
		was := m.held.has(a)
		switch {
		case down && !was:
			m.pressed.set(a, true)
		case !down && was:
			m.released.set(a, true)
		}
		m.held.set(a, down)
	}
}

// Attach installs the key and mouse button callbacks on window.
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		m.HandleKey(key, action)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		m.HandleMouseButton(button, action)
	})
}

// EndFrame clears the edges. Call once per frame after all queries.
func (m *Manager) EndFrame() {
	m.mu.Lock()
	m.pressed, m.released = 0, 0
	m.mu.Unlock()
}

// IsActive reports whether a is held.
func (m *Manager) IsActive(a Action) bool {
	return m.query(&m.held, a)
}

// JustPressed reports whether a went down this frame.
func (m *Manager) JustPressed(a Action) bool {
	return m.query(&m.pressed, a)
}

// JustReleased reports whether a went up this frame.
func (m *Manager) JustReleased(a Action) bool {
	return m.query(&m.released, a)
}

func (m *Manager) query(s *actionSet, a Action) bool {
	if a >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return s.has(a)
}

// Axis folds two opposing actions into -1, 0 or +1.
func (m *Manager) Axis(positive, negative Action) float32 {
	var v float32
	if m.IsActive(positive) {
		v++
	}
	if m.IsActive(negative) {
		v--
	}
	return v
}
