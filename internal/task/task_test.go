package task

import (
	"reflect"
	"sort"
	"testing"
)

const testDate = "2024-06-01"

func TestStamp(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"undated line gets stamped", "buy milk", "2024-06-01 buy milk"},
		{"dated line kept as-is", "2023-01-15 buy milk", "2023-01-15 buy milk"},
		{"date without trailing space gets stamped", "2023-01-15buy milk", "2024-06-01 2023-01-15buy milk"},
		{"date in the middle gets stamped", "buy 2023-01-15 milk", "2024-06-01 buy 2023-01-15 milk"},
		{"short date gets stamped", "2023-1-5 buy milk", "2024-06-01 2023-1-5 buy milk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stamp(tt.line, testDate); got != tt.want {
				t.Errorf("Stamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitDate(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantDate string
		wantRest string
	}{
		{"dated line", "2023-01-15 buy milk", "2023-01-15", "buy milk"},
		{"undated line", "buy milk", "", "buy milk"},
		{"date only, no space", "2023-01-15", "", "2023-01-15"},
		{"empty line", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, rest := SplitDate(tt.line)
			if date != tt.wantDate || rest != tt.wantRest {
				t.Errorf("SplitDate() = (%q, %q), want (%q, %q)", date, rest, tt.wantDate, tt.wantRest)
			}
		})
	}
}

func TestStripDates(t *testing.T) {
	got := StripDates([]string{"2023-01-15 buy milk", "no date here", "2023-02-01 call mom"})
	want := []string{"buy milk", "no date here", "call mom"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StripDates() = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "trims and stamps",
			lines: []string{"  buy milk  "},
			want:  []string{"2024-06-01 buy milk"},
		},
		{
			name:  "drops empty lines",
			lines: []string{"", "   ", "buy milk"},
			want:  []string{"2024-06-01 buy milk"},
		},
		{
			name:  "keeps existing dates",
			lines: []string{"2023-01-15 old task", "new task"},
			want:  []string{"2023-01-15 old task", "2024-06-01 new task"},
		},
		{
			name:  "sorts by full line",
			lines: []string{"2024-02-01 beta", "2024-01-01 zeta", "2024-02-01 alpha"},
			want:  []string{"2024-01-01 zeta", "2024-02-01 alpha", "2024-02-01 beta"},
		},
		{
			name:  "removes duplicates",
			lines: []string{"2024-01-01 same", "2024-01-01 same", "2024-01-01 same"},
			want:  []string{"2024-01-01 same"},
		},
		{
			name:  "duplicates become adjacent through sorting",
			lines: []string{"2024-01-01 a", "2024-01-01 b", "2024-01-01 a"},
			want:  []string{"2024-01-01 a", "2024-01-01 b"},
		},
		{
			name:  "empty input",
			lines: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.lines, testDate); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	lines := []string{"  gamma ", "alpha", "2023-05-05 beta", "alpha", ""}
	once := Normalize(lines, testDate)
	twice := Normalize(once, testDate)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Normalize() not idempotent: first %v, second %v", once, twice)
	}
}

func TestNormalizeOutputShape(t *testing.T) {
	lines := []string{"zeta", "2022-12-31 alpha", "zeta", "  mid  "}
	got := Normalize(lines, testDate)

	if !sort.StringsAreSorted(got) {
		t.Errorf("Normalize() output not sorted: %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] == got[i-1] {
			t.Errorf("Normalize() output contains duplicate %q", got[i])
		}
	}
	for _, line := range got {
		if !HasDate(line) {
			t.Errorf("Normalize() output line %q has no date prefix", line)
		}
	}
}

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"single tag", "see @baz", []string{"baz"}},
		{"no tags", "buy milk", nil},
		{"email address is not a tag", "foo@bar baz", nil},
		{"tag at line start", "@home clean up", []string{"home"}},
		{"multiple tags", "call mom @family @phone", []string{"family", "phone"}},
		{"repeated tag returned per occurrence", "@work sync @work", []string{"work", "work"}},
		{"trailing punctuation kept", "fix bug @urgent!", []string{"urgent!"}},
		{"bare at sign", "meet @ noon", nil},
		{"double at sign keeps inner at", "ping @@ops", []string{"@ops"}},
		{"tab separated", "do it\t@later", []string{"later"}},
		{"empty line", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTags(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPartitionByTag(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		tag       string
		wantMatch []string
		wantRest  []string
	}{
		{
			name:      "matching lines in order",
			lines:     []string{"a @x", "b", "c @x @y", "d @y"},
			tag:       "x",
			wantMatch: []string{"a @x", "c @x @y"},
			wantRest:  []string{"b", "d @y"},
		},
		{
			name:      "unfiled matches tagless lines",
			lines:     []string{"a @x", "b", "c"},
			tag:       "unfiled",
			wantMatch: []string{"b", "c"},
			wantRest:  []string{"a @x"},
		},
		{
			name:     "no matches",
			lines:    []string{"a @x", "b @y"},
			tag:      "z",
			wantRest: []string{"a @x", "b @y"},
		},
		{
			name:  "empty input",
			lines: nil,
			tag:   "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, rest := PartitionByTag(tt.lines, tt.tag)
			if !reflect.DeepEqual(match, tt.wantMatch) {
				t.Errorf("PartitionByTag() match = %v, want %v", match, tt.wantMatch)
			}
			if !reflect.DeepEqual(rest, tt.wantRest) {
				t.Errorf("PartitionByTag() rest = %v, want %v", rest, tt.wantRest)
			}
			if len(match)+len(rest) != len(tt.lines) {
				t.Errorf("PartitionByTag() lost lines: %d + %d != %d", len(match), len(rest), len(tt.lines))
			}
		})
	}
}

func TestGroupByTag(t *testing.T) {
	lines := []string{"a @x", "b", "c @x @y", "d @y @y"}
	got := GroupByTag(lines)

	want := map[string][]string{
		"x":       {"a @x", "c @x @y"},
		"y":       {"c @x @y", "d @y @y", "d @y @y"},
		"unfiled": {"b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupByTag() = %v, want %v", got, want)
	}
}

func TestGroupByTagNoUnfiledWhenTagged(t *testing.T) {
	got := GroupByTag([]string{"a @x"})
	if _, ok := got[Unfiled]; ok {
		t.Errorf("GroupByTag() grouped a tagged line under %q", Unfiled)
	}
}

func TestCountChanges(t *testing.T) {
	tests := []struct {
		name   string
		before []string
		after  []string
		want   int
	}{
		{
			name:   "one line swapped",
			before: []string{"2024-01-01 a", "2024-01-01 b"},
			after:  []string{"2024-01-01 a", "2024-01-01 c"},
			want:   1,
		},
		{
			name:   "identical sets",
			before: []string{"a", "b", "c"},
			after:  []string{"a", "b", "c"},
			want:   0,
		},
		{
			name:   "reordered lines count as zero",
			before: []string{"a", "b", "c"},
			after:  []string{"c", "a", "b"},
			want:   0,
		},
		{
			name:   "two lines added",
			before: []string{"a"},
			after:  []string{"a", "b", "c"},
			want:   2,
		},
		{
			name:   "two lines removed",
			before: []string{"a", "b", "c"},
			after:  []string{"a"},
			want:   2,
		},
		{
			name:   "swap takes the larger side",
			before: []string{"a", "b", "c"},
			after:  []string{"a", "d"},
			want:   2,
		},
		{
			name:   "everything deleted",
			before: []string{"a", "b"},
			after:  []string{},
			want:   2,
		},
		{
			name:   "both empty",
			before: []string{},
			after:  []string{},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountChanges(tt.before, tt.after); got != tt.want {
				t.Errorf("CountChanges() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountChangesDoesNotReorderAfter(t *testing.T) {
	after := []string{"c", "a", "b"}
	CountChanges([]string{"a"}, after)
	if !reflect.DeepEqual(after, []string{"c", "a", "b"}) {
		t.Errorf("CountChanges() mutated its input: %v", after)
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		left  []string
		root  []string
		right []string
		want  []string
	}{
		{
			name:  "additions on both sides, deletion on one",
			left:  []string{"buy milk", "call mom", "new task A"},
			root:  []string{"buy milk", "call mom"},
			right: []string{"buy milk", "new task B"},
			want:  []string{"buy milk", "new task A", "new task B"},
		},
		{
			name:  "no changes",
			left:  []string{"a", "b"},
			root:  []string{"a", "b"},
			right: []string{"a", "b"},
			want:  []string{"a", "b"},
		},
		{
			name:  "same line added on both sides",
			left:  []string{"a", "new"},
			root:  []string{"a"},
			right: []string{"a", "new"},
			want:  []string{"a", "new"},
		},
		{
			name:  "edit is delete plus add",
			left:  []string{"task v2"},
			root:  []string{"task v1"},
			right: []string{"task v1"},
			want:  []string{"task v2"},
		},
		{
			name:  "deleted on both sides",
			left:  []string{"a"},
			root:  []string{"a", "b"},
			right: []string{"a"},
			want:  []string{"a"},
		},
		{
			name:  "left order wins, right additions follow",
			left:  []string{"z", "a"},
			root:  []string{"z", "a"},
			right: []string{"z", "a", "m"},
			want:  []string{"z", "a", "m"},
		},
		{
			name:  "duplicate within a side emitted once",
			left:  []string{"a", "a"},
			root:  []string{},
			right: []string{},
			want:  []string{"a"},
		},
		{
			name:  "all empty",
			left:  []string{},
			root:  []string{},
			right: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Merge(tt.left, tt.root, tt.right); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeKeepsSameSetWhenSidesSwap(t *testing.T) {
	left := []string{"buy milk", "call mom", "new task A"}
	root := []string{"buy milk", "call mom"}
	right := []string{"buy milk", "new task B"}

	a := Merge(left, root, right)
	b := Merge(right, root, left)
	sort.Strings(a)
	sort.Strings(b)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Merge() kept different sets after swapping sides: %v vs %v", a, b)
	}
}

func TestMergeNeverInventsLines(t *testing.T) {
	left := []string{"a", "b"}
	root := []string{"a", "c"}
	right := []string{"a", "d"}

	inputs := toSet(append(append([]string{}, left...), right...))
	for _, line := range Merge(left, root, right) {
		if !inputs[line] {
			t.Errorf("Merge() produced %q, not present in either side", line)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "single digit width",
			lines: []string{"a", "b"},
			want:  []string{"1 a", "2 b"},
		},
		{
			name:  "double digit width aligns right",
			lines: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
			want:  []string{" 1 a", " 2 b", " 3 c", " 4 d", " 5 e", " 6 f", " 7 g", " 8 h", " 9 i", "10 j"},
		},
		{
			name:  "empty input",
			lines: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.lines); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Number() = %v, want %v", got, tt.want)
			}
		})
	}
}
