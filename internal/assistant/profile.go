package assistant

// UserProfile holds everything the assistant knows about one session's user.
// Numeric fields are pointers so "never told" and "told zero" stay distinct.
type UserProfile struct {
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Age         *int     `json:"age"`
	Gender      string   `json:"gender,omitempty"`
	WeightKg    *float64 `json:"weight"`
	HeightCm    *float64 `json:"height"`
	Conditions  []string `json:"conditions"`
	Allergies   []string `json:"allergies"`
	Medications []string `json:"medications"`
}

// ProfilePatch is a partial profile: nil means "leave unchanged". A non-nil
// pointer to an empty slice is an explicit overwrite, not a no-op.
type ProfilePatch struct {
	Name        *string   `json:"name"`
	Email       *string   `json:"email"`
	Age         *int      `json:"age"`
	Gender      *string   `json:"gender"`
	WeightKg    *float64  `json:"weight"`
	HeightCm    *float64  `json:"height"`
	Conditions  *[]string `json:"conditions"`
	Allergies   *[]string `json:"allergies"`
	Medications *[]string `json:"medications"`
}

func NewUserProfile() UserProfile {
	return UserProfile{
		Conditions:  []string{},
		Allergies:   []string{},
		Medications: []string{},
	}
}

// ApplyPatch merges patch into current field by field, last write wins.
// List fields are replaced wholesale, never unioned.
func ApplyPatch(current UserProfile, patch ProfilePatch) UserProfile {
	updated := current
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Email != nil {
		updated.Email = *patch.Email
	}
	if patch.Age != nil {
		age := *patch.Age
		updated.Age = &age
	}
	if patch.Gender != nil {
		updated.Gender = *patch.Gender
	}
	if patch.WeightKg != nil {
		weight := *patch.WeightKg
		updated.WeightKg = &weight
	}
	if patch.HeightCm != nil {
		height := *patch.HeightCm
		updated.HeightCm = &height
	}
	if patch.Conditions != nil {
		updated.Conditions = copyList(*patch.Conditions)
	}
	if patch.Allergies != nil {
		updated.Allergies = copyList(*patch.Allergies)
	}
	if patch.Medications != nil {
		updated.Medications = copyList(*patch.Medications)
	}
	return updated
}

func copyList(items []string) []string {
	result := make([]string, len(items))
	copy(result, items)
	return result
}
