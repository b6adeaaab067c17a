package model

// ScheduleEntry is the raw text of one scheduler day cell.
type ScheduleEntry struct {
	// Label is the day header, e.g. "lundi 02/03/2026".
	Label string `json:"label"`
	// Content is the free text below the header, e.g. "Temps traité: 7:45".
	Content string `json:"content"`
}

// Snapshot holds the text extracted from the portal page during one pass.
// Punches keep document order; unparseable ones are kept so pairing stays
// positional.
type Snapshot struct {
	ScheduleEntries []ScheduleEntry `json:"schedule_entries"`
	PunchTexts      []string        `json:"punch_texts"`
}

// Empty reports whether the page contributed nothing to compute from.
func (s Snapshot) Empty() bool {
	return len(s.ScheduleEntries) == 0 && len(s.PunchTexts) == 0
}
