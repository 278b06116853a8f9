package input

import (
	"context"
	"sync/atomic"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/humidistat/humidistat/internal/ui"
)

const keyBufferSize = 16

// KeyboardSource maps terminal keys onto buttons: arrow keys (or h/j/k/l) for
// directions, enter or space for select. Ctrl+C invokes onQuit.
type KeyboardSource struct {
	keys   chan Button
	onQuit func()
}

func NewKeyboardSource(onQuit func()) *KeyboardSource {
	return &KeyboardSource{
		keys:   make(chan Button, keyBufferSize),
		onQuit: onQuit,
	}
}

// Poll returns the most recent pending key, collapsing key repeats that piled up between polls
func (k *KeyboardSource) Poll() Button {
	button := None
	for {
		select {
		case next := <-k.keys:
			button = next
		default:
			return button
		}
	}
}

// listen and simulateKeyPress are replaced in tests
var (
	listen           = keyboard.Listen
	simulateKeyPress = keyboard.SimulateKeyPress
)

// Run listens for key presses until ctx is cancelled
func (k *KeyboardSource) Run(ctx context.Context) error {
	// stopped is set before the listener returns, a simulated key sent after
	// that would never be received
	var stopped atomic.Bool
	listenDone := make(chan struct{})
	defer close(listenDone)

	go func() {
		select {
		case <-listenDone:
		case <-ctx.Done():
			if !stopped.Load() {
				// unblock the listener
				_ = simulateKeyPress(keys.Escape)
			}
		}
	}()

	return listen(func(key keys.Key) (stop bool, err error) {
		if ctx.Err() != nil {
			stopped.Store(true)
			return true, nil
		}
		if key.Code == keys.CtrlC {
			ui.Debug("Ctrl+C pressed, quitting")
			stopped.Store(true)
			if k.onQuit != nil {
				k.onQuit()
			}
			return true, nil
		}
		button := mapKey(key)
		if button == None {
			return false, nil
		}
		select {
		case k.keys <- button:
		default:
			// drop keys while nobody polls
		}
		return false, nil
	})
}

func mapKey(key keys.Key) Button {
	switch key.Code {
	case keys.Up:
		return Up
	case keys.Down:
		return Down
	case keys.Left:
		return Left
	case keys.Right:
		return Right
	case keys.Enter, keys.Space:
		return Select
	case keys.RuneKey:
		if len(key.Runes) != 1 {
			return None
		}
		switch key.Runes[0] {
		case 'k':
			return Up
		case 'j':
			return Down
		case 'h':
			return Left
		case 'l':
			return Right
		}
	}
	return None
}
