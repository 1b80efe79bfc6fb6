package models

// Promoter is a brand promoter working one or more floors.
// AssignedFloors holds floor names, not ids; deleting a floor does not cascade here.
type Promoter struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	AssignedFloors []string `json:"assignedFloors"`
	Password       string   `json:"password,omitempty"`
}

// GetID returns the promoter id
func (p Promoter) GetID() string {
	return p.ID
}

// HasPassword reports whether the promoter has created a password
func (p Promoter) HasPassword() bool {
	return p.Password != ""
}

// HasFloor reports whether the floor name is assigned to the promoter
func (p Promoter) HasFloor(name string) bool {
	for _, f := range p.AssignedFloors {
		if f == name {
			return true
		}
	}
	return false
}

// PromoterProfile is the public view of a promoter; the password never leaves the service
type PromoterProfile struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	AssignedFloors []string `json:"assignedFloors"`
	HasPassword    bool     `json:"hasPassword"`
}

// Profile strips the password from the promoter
func (p Promoter) Profile() PromoterProfile {
	floors := p.AssignedFloors
	if floors == nil {
		floors = []string{}
	}
	return PromoterProfile{
		ID:             p.ID,
		Name:           p.Name,
		AssignedFloors: floors,
		HasPassword:    p.HasPassword(),
	}
}

// Floor is a named physical sales location
type Floor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetID returns the floor id
func (f Floor) GetID() string {
	return f.ID
}
