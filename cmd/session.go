package main

import (
	"phasewatch/internal/core/encounter"
	"phasewatch/internal/core/hotkey"
	"phasewatch/internal/ui/overlay"
)

// session is one running overlay. Its fields are touched on the UI goroutine only.
type session struct {
	coordinator *encounter.Coordinator
	window      *overlay.Window
	listener    *hotkey.Listener
	// release frees what belongs to this session alone.
	release func()
}

// sessions tracks the active overlay. The hotkey registries are shared by
// every session, so only the active one may clear them.
type sessions struct {
	current       *session
	releaseShared func()
	onIdle        func()
}

func (tracker *sessions) activate(s *session) {
	tracker.current = s
}

// end releases s. Shared inputs are cleared only while s is the active
// session, so a late close of an older session leaves the new one intact.
func (tracker *sessions) end(s *session) {
	if s == nil {
		return
	}
	if s.release != nil {
		s.release()
	}
	if tracker.current != s {
		return
	}
	tracker.current = nil
	if tracker.releaseShared != nil {
		tracker.releaseShared()
	}
	if tracker.onIdle != nil {
		tracker.onIdle()
	}
}
