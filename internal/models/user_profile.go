package models

// UserProfile is the display data the dashboard keeps for the logged-in persona.
type UserProfile struct {
	Username            string              `json:"username"`
	Name                string              `json:"name"`
	Age                 int                 `json:"age"`
	Theme               string              `json:"theme"`
	SpendingPersonality SpendingPersonality `json:"spendingPersonality"`
}
