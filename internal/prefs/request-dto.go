package prefs

// UpdatePreferencesRequest carries a partial update. Nil fields are left
// as they are.
type UpdatePreferencesRequest struct {
	Visited   *bool   `json:"visited"`
	Onboarded *bool   `json:"onboarded"`
	HasSwiped *bool   `json:"has_swiped"`
	Currency  *string `json:"currency" binding:"omitempty,len=3"`
}
