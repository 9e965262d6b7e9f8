package core

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseRows(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantRows   []RawCsvRow
		wantErrors []string
	}{
		{
			name:  "header case and spacing",
			input: " Title ,LOCATION,Employment_Type,extra\nEngineer, Berlin ,Full time,x\n",
			wantRows: []RawCsvRow{
				{Title: "Engineer", Location: "Berlin", EmploymentType: "Full time"},
			},
		},
		{
			name:  "blank lines skipped",
			input: "title,location,employment_type\n\n,,\nA,B,C\n  ,\t, \n",
			wantRows: []RawCsvRow{
				{Title: "A", Location: "B", EmploymentType: "C"},
			},
		},
		{
			name:  "byte order mark",
			input: "\ufefftitle,location,employment_type\r\nA,B,C\r\n",
			wantRows: []RawCsvRow{
				{Title: "A", Location: "B", EmploymentType: "C"},
			},
		},
		{
			name:  "all columns",
			input: strings.Join(CsvColumns, ",") + "\nt,wp,l,d,et,el,jt,sr,slug,3\n",
			wantRows: []RawCsvRow{{
				Title: "t", WorkPolicy: "wp", Location: "l", Department: "d", EmploymentType: "et",
				ExperienceLevel: "el", JobType: "jt", SalaryRange: "sr", JobSlug: "slug", PostedDaysAgo: "3",
			}},
		},
		{
			name:  "quoted fields",
			input: "title,location,employment_type\n\"Engineer, Senior\",\"Berlin\",Contract\n",
			wantRows: []RawCsvRow{
				{Title: "Engineer, Senior", Location: "Berlin", EmploymentType: "Contract"},
			},
		},
		{
			name:  "too few fields",
			input: "title,location,employment_type\nA,B\n",
			wantRows: []RawCsvRow{
				{Title: "A", Location: "B"},
			},
			wantErrors: []string{"line 2: too few fields: expected 3 fields but parsed 2"},
		},
		{
			name:  "too many fields",
			input: "title,location,employment_type\nA,B,C\nA,B,C,D\n",
			wantRows: []RawCsvRow{
				{Title: "A", Location: "B", EmploymentType: "C"},
				{Title: "A", Location: "B", EmploymentType: "C"},
			},
			wantErrors: []string{"line 3: too many fields: expected 3 fields but parsed 4"},
		},
		{
			name:  "header only",
			input: "title,location,employment_type\n",
		},
		{
			name:  "empty",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseRows(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseRows() error = %v", err)
			}
			if !reflect.DeepEqual(res.Rows, tt.wantRows) {
				t.Errorf("Rows = %+v, want %+v", res.Rows, tt.wantRows)
			}
			if !reflect.DeepEqual(res.Errors, tt.wantErrors) {
				t.Errorf("Errors = %q, want %q", res.Errors, tt.wantErrors)
			}
		})
	}
}

func TestParseRows_BareQuote(t *testing.T) {
	input := "title,location,employment_type\nEng\"ineer,Berlin,Contract\nA,B,C\n"

	res, err := ParseRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("Errors = %q, want one entry", res.Errors)
	}
	if !strings.HasPrefix(res.Errors[0], "line 2: ") || !strings.Contains(res.Errors[0], "bare \"") {
		t.Errorf("Errors[0] = %q", res.Errors[0])
	}
	if len(res.Rows) != 1 || res.Rows[0].Title != "A" {
		t.Errorf("Rows = %+v, want the line after the bad one", res.Rows)
	}
}

func TestParseRows_ErrorCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("title,location,employment_type\n")
	for i := 0; i < 50; i++ {
		b.WriteString("A\n")
	}

	res, err := ParseRows(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if len(res.Errors) != maxParseErrors {
		t.Errorf("len(Errors) = %d, want %d", len(res.Errors), maxParseErrors)
	}
}

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{" Title ", "=\"Location\"", "title", "'Department'"})

	want := HeaderIndex{"title": 0, "location": 1, "department": 3}
	if !reflect.DeepEqual(idx, want) {
		t.Errorf("MakeHeaderIndex() = %v, want %v", idx, want)
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  plain  ", "plain"},
		{`="007"`, "007"},
		{"=SUM", "SUM"},
		{`"quoted"`, "quoted"},
		{"'single'", "single"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.in); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
