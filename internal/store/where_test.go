package store

import "testing"

func TestWhereBuilder_Build_Empty(t *testing.T) {
	wb := NewWhereBuilder()
	whereClause, args := wb.Build()

	if whereClause != "" {
		t.Errorf("expected empty string for no conditions, got %q", whereClause)
	}
	if args != nil {
		t.Errorf("expected nil args for no conditions, got %v", args)
	}
}

func TestWhereBuilder_Add(t *testing.T) {
	tests := []struct {
		name       string
		conditions [][2]any
		wantClause string
		wantArgs   []any
	}{
		{
			name:       "single condition",
			conditions: [][2]any{{"status", "active"}},
			wantClause: " WHERE status = $1",
			wantArgs:   []any{"active"},
		},
		{
			name:       "multiple conditions",
			conditions: [][2]any{{"status", "active"}, {"type", "user"}},
			wantClause: " WHERE status = $1 AND type = $2",
			wantArgs:   []any{"active", "user"},
		},
		{
			name:       "empty string skipped",
			conditions: [][2]any{{"status", ""}, {"type", "user"}},
			wantClause: " WHERE type = $1",
			wantArgs:   []any{"user"},
		},
		{
			name:       "nil skipped",
			conditions: [][2]any{{"is_active", nil}},
			wantClause: "",
		},
		{
			name:       "false kept",
			conditions: [][2]any{{"is_active", false}},
			wantClause: " WHERE is_active = $1",
			wantArgs:   []any{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := NewWhereBuilder()
			for _, c := range tt.conditions {
				wb.Add(c[0].(string), c[1])
			}

			clause, args := wb.Build()
			if clause != tt.wantClause {
				t.Errorf("clause = %q, want %q", clause, tt.wantClause)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestWhereBuilder_AddExact_KeepsEmpty(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddExact("slug", "")

	clause, args := wb.Build()
	if clause != " WHERE slug = $1" || len(args) != 1 {
		t.Errorf("got %q %v", clause, args)
	}
}

func TestWhereBuilder_AddTimestampRange(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddTimestampRange("created_at", "2024-01-01", "2024-12-31")

	whereClause, args := wb.Build()

	expectedClause := " WHERE created_at >= $1 AND created_at <= $2"
	if whereClause != expectedClause {
		t.Errorf("expected %q, got %q", expectedClause, whereClause)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	if args[0] != "2024-01-01" || args[1] != "2024-12-31" {
		t.Errorf("expected args ['2024-01-01', '2024-12-31'], got %v", args)
	}
}

func TestWhereBuilder_AddTimestampRange_OpenEnded(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddTimestampRange("created_at", "", "2024-12-31")

	whereClause, _ := wb.Build()
	if whereClause != " WHERE created_at <= $1" {
		t.Errorf("got %q", whereClause)
	}
}

func TestWhereBuilder_NextArgIndex(t *testing.T) {
	wb := NewWhereBuilder()

	if wb.NextArgIndex() != 1 {
		t.Errorf("expected initial NextArgIndex to be 1, got %d", wb.NextArgIndex())
	}

	wb.Add("a", "x")
	wb.Add("b", "")
	wb.AddTimestampRange("c", "from", "to")

	if wb.NextArgIndex() != 4 {
		t.Errorf("expected NextArgIndex to be 4, got %d", wb.NextArgIndex())
	}
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"normal identifier", "jobs", `"jobs"`},
		{"reserved word still quoted", "position", `"position"`},
		{"contains double quote - escaped", `user"name`, `"user""name"`},
		{"sql injection attempt safely quoted", `jobs"; DROP TABLE jobs; --`, `"jobs""; DROP TABLE jobs; --"`},
		{"empty string", "", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quoteIdentifier(tt.input); got != tt.want {
				t.Errorf("quoteIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
