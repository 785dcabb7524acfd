package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/tasklist/internal/state"
)

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgRehydrated is sent when the task collection was replaced from storage,
// for example after another process edited the store file. State is the
// snapshot at reload time; the model reads the live store when handling it.
type MsgRehydrated struct {
	State state.State
}

func (MsgRehydrated) sealed() {}

// MsgClearNotice is sent when a transient notice expires.
type MsgClearNotice struct {
	Seq int
}

func (MsgClearNotice) sealed() {}

// Forward relays rehydrations of store to send, typically tea.Program.Send.
// Changes made through the model itself are not relayed; the model already
// sees them. It returns a function that stops forwarding.
func Forward(store *state.Store, send func(tea.Msg)) func() {
	return store.Subscribe(func(c state.Change) {
		if !c.Rehydrated {
			return
		}
		send(MsgRehydrated{State: c.State})
	})
}
