package model

// Mood is a named intent selected by the user
type Mood string

// Known moods
const (
	MoodWork      Mood = "work"
	MoodDateNight Mood = "date-night"
	MoodQuickBite Mood = "quick-bite"
	MoodBudget    Mood = "budget"
	MoodCoffee    Mood = "coffee"
	MoodFancy     Mood = "fancy"
)

// MoodConfig describes how a mood is presented to the user
type MoodConfig struct {
	ID          Mood   `json:"id"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

var moods = []MoodConfig{
	{ID: MoodWork, Label: "Work", Icon: "💻", Description: "Cafes & coworking spaces with WiFi"},
	{ID: MoodDateNight, Label: "Date Night", Icon: "🌹", Description: "Romantic restaurants & bars"},
	{ID: MoodQuickBite, Label: "Quick Bite", Icon: "🍔", Description: "Fast & casual dining options"},
	{ID: MoodBudget, Label: "Budget", Icon: "💰", Description: "Affordable & value options"},
	{ID: MoodCoffee, Label: "Coffee", Icon: "☕", Description: "Best coffee shops nearby"},
	{ID: MoodFancy, Label: "Fancy", Icon: "✨", Description: "Upscale dining experiences"},
}

// Moods returns the mood catalogue in display order. The slice is a copy.
func Moods() []MoodConfig {
	out := make([]MoodConfig, len(moods))
	copy(out, moods)
	return out
}

// ParseMood reports whether s names a known mood
func ParseMood(s string) (Mood, bool) {
	for _, m := range moods {
		if string(m.ID) == s {
			return m.ID, true
		}
	}
	return Mood(s), false
}

// CategoryTable maps moods to ordered provider category tags.
// Tables are built once as package values and treated as read-only.
type CategoryTable struct {
	Default string
	ByMood  map[Mood][]string
}

// Lookup returns the categories for a mood, or the default category for unknown moods.
// The returned slice is a copy.
func (t CategoryTable) Lookup(mood Mood) []string {
	cats, ok := t.ByMood[mood]
	if !ok || len(cats) == 0 {
		return []string{t.Default}
	}
	out := make([]string, len(cats))
	copy(out, cats)
	return out
}
