package domain

import (
	"fmt"
	"time"
)

// Role of a chat participant.
type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// ChatTurn is one message of a simulated hearing.
type ChatTurn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// SimState is the lifecycle state of a simulation.
type SimState string

const (
	SimConfiguring SimState = "configuring"
	SimActive      SimState = "active"
	SimDebriefed   SimState = "debriefed"
)

// Party is the side the user represents.
type Party string

const (
	PartyPlaintiff Party = "plaintiff"
	PartyDefendant Party = "defendant"
)

// ParseParty accepts the English and Russian names of both sides.
func ParseParty(s string) (Party, error) {
	switch s {
	case "plaintiff", "Истец", "истец":
		return PartyPlaintiff, nil
	case "defendant", "Ответчик", "ответчик":
		return PartyDefendant, nil
	}
	return "", fmt.Errorf("unknown party %q", s)
}

// Opponent returns the absent side.
func (p Party) Opponent() Party {
	if p == PartyPlaintiff {
		return PartyDefendant
	}
	return PartyPlaintiff
}

// Simulation is a simulated court hearing.
type Simulation struct {
	ID        string     `json:"id"`
	State     SimState   `json:"state"`
	UserRole  Party      `json:"user_role,omitempty"`
	Materials string     `json:"-"`
	Turns     []ChatTurn `json:"turns"`
	TurnCount int        `json:"turn_count"`
	Debrief   string     `json:"debrief,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewSimulation returns a simulation waiting for configuration.
func NewSimulation(id string, now time.Time) *Simulation {
	return &Simulation{
		ID:        id,
		State:     SimConfiguring,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
