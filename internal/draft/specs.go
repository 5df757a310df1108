package draft

import (
	"strings"
)

// SpecEntry is one free-form attribute row of the specification list.
type SpecEntry struct {
	Key   string
	Value string
}

// SpecList is the order-preserving attribute list. Blank rows are kept while
// editing (the admin may still be typing) and only filtered out when the list
// is folded for submission.
type SpecList struct {
	list *list[SpecEntry]
}

func NewSpecList() *SpecList {
	return &SpecList{list: newList[SpecEntry](0, nil)}
}

// Add appends an empty row for the admin to fill in.
func (sl *SpecList) Add() {
	sl.list.appendAll(SpecEntry{})
}

func (sl *SpecList) Remove(i int) error {
	return sl.list.removeAt(i)
}

func (sl *SpecList) SetKey(i int, key string) error {
	return sl.list.updateAt(i, func(e *SpecEntry) { e.Key = key })
}

func (sl *SpecList) SetValue(i int, value string) error {
	return sl.list.updateAt(i, func(e *SpecEntry) { e.Value = value })
}

func (sl *SpecList) Set(entries []SpecEntry) {
	sl.list = newList[SpecEntry](0, nil)
	sl.list.appendAll(entries...)
}

func (sl *SpecList) Len() int {
	return sl.list.len()
}

func (sl *SpecList) Entries() []SpecEntry {
	return sl.list.all()
}

// Fold collapses the list into the submitted specs mapping. Keys and values
// are trimmed; rows with a blank key or value are skipped; a key appearing
// twice resolves to its later value (last write wins).
func (sl *SpecList) Fold() map[string]string {
	folded := make(map[string]string)
	for _, e := range sl.list.all() {
		key := strings.TrimSpace(e.Key)
		value := strings.TrimSpace(e.Value)
		if key == "" || value == "" {
			continue
		}
		folded[key] = value
	}
	if len(folded) == 0 {
		return nil
	}
	return folded
}
