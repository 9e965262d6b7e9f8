package core

import "sort"

// MoveDirection is the direction a section moves in the page order.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// MoveSection returns sections with the one identified by id swapped with
// its neighbour in direction dir, and every position rewritten to its
// 0-based index. Moving past either end, or an unknown id, only
// re-densifies the positions. The input is not modified.
func MoveSection(sections []ContentSection, id string, dir MoveDirection) []ContentSection {
	out := ordered(sections)

	i := -1
	for k, s := range out {
		if s.ID == id {
			i = k
			break
		}
	}

	j := i - 1
	if dir == MoveDown {
		j = i + 1
	}
	if i >= 0 && j >= 0 && j < len(out) {
		out[i], out[j] = out[j], out[i]
	}

	return renumber(out)
}

// Densify returns sections sorted by position with positions rewritten to
// 0..n-1. Used after a delete leaves a gap.
func Densify(sections []ContentSection) []ContentSection {
	return renumber(ordered(sections))
}

func ordered(sections []ContentSection) []ContentSection {
	out := append([]ContentSection(nil), sections...)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Position < out[b].Position })
	return out
}

func renumber(sections []ContentSection) []ContentSection {
	for k := range sections {
		sections[k].Position = k
	}
	return sections
}
