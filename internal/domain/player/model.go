package player

import (
	"fmt"
	"strings"
)

// Player is a participant bidding in movie auctions.
type Player struct {
	ID        string
	FirstName string
	LastName  string
}

func (p Player) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.FirstName == "" && p.LastName == "" {
		return fmt.Errorf("player name is required")
	}
	return nil
}
