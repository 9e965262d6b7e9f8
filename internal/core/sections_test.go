package core

import (
	"reflect"
	"testing"
)

func sectionsAt(ids ...string) []ContentSection {
	out := make([]ContentSection, len(ids))
	for i, id := range ids {
		out[i] = ContentSection{ID: id, Position: i}
	}
	return out
}

func order(sections []ContentSection) []string {
	var out []string
	for i, s := range sections {
		if s.Position != i {
			return append(out, "position gap")
		}
		out = append(out, s.ID)
	}
	return out
}

func TestMoveSection(t *testing.T) {
	tests := []struct {
		name string
		id   string
		dir  MoveDirection
		want []string
	}{
		{"up", "b", MoveUp, []string{"b", "a", "c"}},
		{"down", "b", MoveDown, []string{"a", "c", "b"}},
		{"first up is no-op", "a", MoveUp, []string{"a", "b", "c"}},
		{"last down is no-op", "c", MoveDown, []string{"a", "b", "c"}},
		{"unknown id", "zz", MoveUp, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sectionsAt("a", "b", "c")
			got := MoveSection(in, tt.id, tt.dir)
			if !reflect.DeepEqual(order(got), tt.want) {
				t.Errorf("MoveSection() = %v, want %v", order(got), tt.want)
			}
			if !reflect.DeepEqual(order(in), []string{"a", "b", "c"}) {
				t.Errorf("input was modified: %v", order(in))
			}
		})
	}
}

func TestMoveSection_SparsePositions(t *testing.T) {
	in := []ContentSection{{ID: "c", Position: 9}, {ID: "a", Position: 2}, {ID: "b", Position: 5}}
	got := MoveSection(in, "c", MoveUp)
	if want := []string{"a", "c", "b"}; !reflect.DeepEqual(order(got), want) {
		t.Errorf("MoveSection() = %v, want %v", order(got), want)
	}
}

func TestDensify(t *testing.T) {
	in := []ContentSection{{ID: "x", Position: 4}, {ID: "y", Position: 0}, {ID: "z", Position: 2}}
	if want := []string{"y", "z", "x"}; !reflect.DeepEqual(order(Densify(in)), want) {
		t.Errorf("Densify() = %v, want %v", order(Densify(in)), want)
	}
	if got := Densify(nil); len(got) != 0 {
		t.Errorf("Densify(nil) = %v", got)
	}
}
