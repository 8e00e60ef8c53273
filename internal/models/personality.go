package models

type SpendingPersonality string

const (
	HeavySpender  SpendingPersonality = "Heavy Spender"
	MediumSpender SpendingPersonality = "Medium Spender"
	MaxSaver      SpendingPersonality = "Max Saver"
)

// Personalities lists every classification the backend accepts.
var Personalities = []SpendingPersonality{HeavySpender, MediumSpender, MaxSaver}

func (p SpendingPersonality) IsValid() bool {
	switch p {
	case HeavySpender, MediumSpender, MaxSaver:
		return true
	default:
		return false
	}
}

func (p SpendingPersonality) String() string {
	return string(p)
}
