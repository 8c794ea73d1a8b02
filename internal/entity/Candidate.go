package entity

type Candidate struct {
	ID          string         `json:"id"`
	ElectionID  string         `json:"electionId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	PhotoURL    string         `json:"photoUrl,omitempty"`
	Position    int            `json:"position"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
