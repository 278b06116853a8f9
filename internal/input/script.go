package input

import "sync"

// ScriptSource replays a fixed button sequence, one entry per poll, and reports
// None once the sequence is exhausted.
type ScriptSource struct {
	mu      sync.Mutex
	buttons []Button
	next    int
}

func NewScriptSource(buttons ...Button) *ScriptSource {
	return &ScriptSource{buttons: buttons}
}

// ParseScript creates a ScriptSource from button names
func ParseScript(names []string) (*ScriptSource, error) {
	var buttons []Button
	for _, name := range names {
		button, err := ParseButton(name)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, button)
	}
	return NewScriptSource(buttons...), nil
}

func (s *ScriptSource) Poll() Button {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.buttons) {
		return None
	}
	button := s.buttons[s.next]
	s.next++
	return button
}

// Done reports whether all scripted buttons have been polled
func (s *ScriptSource) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next >= len(s.buttons)
}
