package model

// Entry is one player's submitted response group for the active prompt.
type Entry struct {
	Owner Identity
	Cards []*Card
}

// Texts returns the response texts in play order.
func (e *Entry) Texts() []string {
	texts := make([]string, len(e.Cards))
	for i, c := range e.Cards {
		texts[i] = c.Text
	}
	return texts
}

// Table holds the active prompt and the entries submitted so far.
type Table struct {
	Prompt  *Card
	Entries []*Entry
}

// AddEntry appends a submitted entry.
func (t *Table) AddEntry(entry *Entry) {
	t.Entries = append(t.Entries, entry)
}

// Entry returns the entry at the given index, or nil if out of range.
func (t *Table) Entry(idx int) *Entry {
	if idx < 0 || idx >= len(t.Entries) {
		return nil
	}
	return t.Entries[idx]
}

// ShuffleEntries randomizes entry order so reveal order carries no signal
// from submission order.
func (t *Table) ShuffleEntries(intn func(n int) int) {
	for i := len(t.Entries) - 1; i > 0; i-- {
		j := intn(i + 1)
		t.Entries[i], t.Entries[j] = t.Entries[j], t.Entries[i]
	}
}

// CardCount returns the total number of response cards on the table.
func (t *Table) CardCount() int {
	n := 0
	for _, e := range t.Entries {
		n += len(e.Cards)
	}
	return n
}
