package prefs

// Preferences are the small per-user flags the app reads once at startup
// and writes on change. Hash field names are wire-stable, clients key on
// them directly.
type Preferences struct {
	Visited   bool   `json:"visited"`
	Onboarded bool   `json:"onboarded"`
	HasSwiped bool   `json:"has_swiped"`
	Currency  string `json:"currency"`
}

const (
	fieldVisited   = "visited"
	fieldOnboarded = "onboarded"
	fieldHasSwiped = "has_swiped"
	fieldCurrency  = "currency"
)

func (p Preferences) toHash() map[string]interface{} {
	return map[string]interface{}{
		fieldVisited:   boolField(p.Visited),
		fieldOnboarded: boolField(p.Onboarded),
		fieldHasSwiped: boolField(p.HasSwiped),
		fieldCurrency:  p.Currency,
	}
}

func fromHash(fields map[string]string) Preferences {
	return Preferences{
		Visited:   fields[fieldVisited] == "1",
		Onboarded: fields[fieldOnboarded] == "1",
		HasSwiped: fields[fieldHasSwiped] == "1",
		Currency:  fields[fieldCurrency],
	}
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
