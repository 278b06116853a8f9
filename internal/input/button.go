// Package input turns raw button sources into debounced button reads with a
// press duration.
package input

import (
	"fmt"
	"strings"
	"time"
)

type Button int

const (
	None Button = iota
	Up
	Down
	Left
	Right
	Select
)

var buttonNames = map[Button]string{
	None:   "none",
	Up:     "up",
	Down:   "down",
	Left:   "left",
	Right:  "right",
	Select: "select",
}

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// ParseButton parses a button name case-insensitively
func ParseButton(name string) (Button, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for button, buttonName := range buttonNames {
		if buttonName == name {
			return button, nil
		}
	}
	return None, fmt.Errorf("unknown button: %s", name)
}

// Source reports the button currently pressed, None if no button is pressed
type Source interface {
	Poll() Button
}

// Reader returns the current button and for how long it has been held
type Reader interface {
	Read(now time.Time) (Button, time.Duration)
}

// ButtonReader tracks how long a button has been held across polls.
// Reads of the same button that are at most holdGap apart count as one press.
type ButtonReader struct {
	source  Source
	holdGap time.Duration

	current    Button
	pressStart time.Time
	lastSeen   time.Time
}

func NewButtonReader(source Source, holdGap time.Duration) *ButtonReader {
	return &ButtonReader{
		source:  source,
		holdGap: holdGap,
	}
}

func (r *ButtonReader) Read(now time.Time) (Button, time.Duration) {
	button := r.source.Poll()
	if button == None {
		if now.Sub(r.lastSeen) > r.holdGap {
			r.current = None
		}
		return None, 0
	}

	if button != r.current || now.Sub(r.lastSeen) > r.holdGap {
		r.current = button
		r.pressStart = now
	}
	r.lastSeen = now
	return button, now.Sub(r.pressStart)
}
