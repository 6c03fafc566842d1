// Package domain contains entities without logic, just meta-data
package domain

import (
	"errors"
	"strings"
)

const (
	MaxPlayerIDLen    = 64
	MaxDisplayNameLen = 36
)

var (
	ErrNameTooLong  = errors.New("display name too long")
	ErrNameEmpty    = errors.New("display name empty")
	ErrIdentityLong = errors.New("identity too long")
)

// PlayerID is the stable identity supplied by the client. It survives
// reconnects; the connection handle does not.
type PlayerID string

type Player struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	Ready  bool     `json:"isReady"`
	Online bool     `json:"isOnline"`
}

// NewPlayer is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewPlayer(id PlayerID, name string) (*Player, error) {
	if len(id) > MaxPlayerIDLen {
		return nil, ErrIdentityLong
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Player{ID: id, Name: name, Online: true}, nil
}

func (p *Player) SetName(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	p.Name = name
	return nil
}

func validateName(name string) error {
	if len(name) == 0 {
		return ErrNameEmpty
	}
	if len(name) > MaxDisplayNameLen {
		return ErrNameTooLong
	}
	return nil
}
