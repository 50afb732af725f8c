package fstat

import "sort"

// SortBy selects the ordering applied to a buffered entry list.
type SortBy string

// Supported orderings.
const (
	SortByName     SortBy = "name"
	SortBySize     SortBy = "size"
	SortByModified SortBy = "modified"
	SortByType     SortBy = "type"
)

// SortEntries orders entries in place: name ascending, size largest
// first, modified newest first (entries without a timestamp last), or
// extension ascending (entries without one last, path as tiebreak).
// Unknown values fall back to name ordering.
func SortEntries(entries []FileEntry, by SortBy) {
	switch by {
	case SortBySize:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Size > entries[j].Size
		})
	case SortByModified:
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i].ModTime, entries[j].ModTime

			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})
	case SortByType:
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i].Extension, entries[j].Extension

			switch {
			case a == b:
				return entries[i].Path < entries[j].Path
			case a == "":
				return false
			case b == "":
				return true
			default:
				return a < b
			}
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Path < entries[j].Path
		})
	}
}
