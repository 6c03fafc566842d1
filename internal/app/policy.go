package app

import (
	"impostor/internal/core"
	"impostor/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	MarkSlow
	KickMember
	DropFrame
)

// Policy decides what happens to a member whose send buffer is full.
type Policy interface {
	OnBackPressure(room *core.Room, id domain.PlayerID) BackpressureAction
}

type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(room *core.Room, id domain.PlayerID) BackpressureAction {
	return KickMember
}
