package domain

// TeamMember is one entry on the "Our Team" page.
type TeamMember struct {
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Role       string `json:"role"`
	ImageRef   string `json:"image_ref"`
	ProfileURL string `json:"profile_url,omitempty"`
}

// IsLead reports whether the member leads the team.
func (m *TeamMember) IsLead() bool {
	return m.Role == "Team Lead"
}
