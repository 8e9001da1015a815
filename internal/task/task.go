package task

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Unfiled is the synthetic tag grouping lines that carry no tag.
const Unfiled = "unfiled"

// datePrefix matches the ISO date at the start of a line, including the
// space that separates it from the description.
var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} `)

// Today returns the current UTC date in task-line form.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// HasDate reports whether the line starts with a date prefix.
func HasDate(line string) bool {
	return datePrefix.MatchString(line)
}

// Stamp prepends date to a line that does not already carry a date prefix.
func Stamp(line, date string) string {
	if HasDate(line) {
		return line
	}
	return date + " " + line
}

// SplitDate splits a line into its date prefix and the remaining text.
// A line without a date prefix comes back unchanged with an empty date.
func SplitDate(line string) (date, rest string) {
	m := datePrefix.FindString(line)
	if m == "" {
		return "", line
	}
	return strings.TrimSuffix(m, " "), line[len(m):]
}

// StripDates removes the date prefix from every line that has one.
func StripDates(lines []string) []string {
	result := make([]string, len(lines))
	for i, line := range lines {
		_, result[i] = SplitDate(line)
	}
	return result
}

// Normalize reduces raw lines to canonical form: trim each line, drop lines
// that become empty, stamp undated lines with date, sort, and drop duplicate
// lines. Normalizing an already normalized collection is a no-op.
func Normalize(lines []string, date string) []string {
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, Stamp(line, date))
		}
	}
	sort.Strings(result)
	return dedupe(result)
}

// dedupe removes consecutive duplicates. Input must be sorted.
func dedupe(lines []string) []string {
	prev := ""
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != prev {
			result = append(result, line)
			prev = line
		}
	}
	return result
}

// ExtractTags returns every @tag token of the line in occurrence order. A
// token is a tag only when its @ sits at a whitespace boundary, so
// address-like text (user@host) is not picked up. The tag is everything
// after the @ up to the next whitespace, punctuation included. A tag
// occurring twice is returned twice.
func ExtractTags(line string) []string {
	var tags []string
	for _, field := range strings.Fields(line) {
		if len(field) > 1 && field[0] == '@' {
			tags = append(tags, field[1:])
		}
	}
	return tags
}

// PartitionByTag splits lines into those bearing tag and the rest, both in
// input order. The synthetic tag Unfiled matches lines without any tag.
func PartitionByTag(lines []string, tag string) (match, rest []string) {
	for _, line := range lines {
		tags := ExtractTags(line)
		if (len(tags) == 0 && tag == Unfiled) || contains(tags, tag) {
			match = append(match, line)
		} else {
			rest = append(rest, line)
		}
	}
	return match, rest
}

// GroupByTag maps every tag to the lines bearing it, in input order. Lines
// without tags are grouped under Unfiled; a line repeating a tag appears in
// that group once per occurrence. Trailing whitespace is dropped from the
// grouped lines (numbered blank lines would otherwise keep it).
func GroupByTag(lines []string) map[string][]string {
	groups := make(map[string][]string)
	for _, line := range lines {
		tags := ExtractTags(line)
		line = strings.TrimRight(line, " \t")
		for _, tag := range tags {
			groups[tag] = append(groups[tag], line)
		}
		if len(tags) == 0 {
			groups[Unfiled] = append(groups[Unfiled], line)
		}
	}
	return groups
}

// CountChanges reports how many lines differ between before and after.
// before is assumed sorted and walked as given; after is sorted on a copy. A
// two-pointer walk counts equal lines as unchanged, and the result is the
// larger of lines removed and lines added. The result is a heuristic, not an
// edit distance: a line that only moved counts as zero, and removals do not
// add up with additions.
func CountChanges(before, after []string) int {
	sorted := make([]string, len(after))
	copy(sorted, after)
	sort.Strings(sorted)

	i, j, unchanged := 0, 0, 0
	for i < len(before) && j < len(sorted) {
		switch {
		case before[i] == sorted[j]:
			i++
			j++
			unchanged++
		case before[i] < sorted[j]:
			i++
		default:
			j++
		}
	}

	removed := len(before) - unchanged
	added := len(sorted) - unchanged
	if removed > added {
		return removed
	}
	return added
}

// Merge reconciles two diverged line collections against their common
// ancestor. Lines present on both sides stay. Lines present on one side
// stay only when absent from root; presence in root means the other side
// deleted them. The result follows left's line order with right-only
// additions appended, each kept line emitted exactly once. Merging never
// produces conflict markers.
func Merge(left, root, right []string) []string {
	leftSet := toSet(left)
	rightSet := toSet(right)
	rootSet := toSet(root)

	keep := make(map[string]bool)
	for line := range leftSet {
		if rightSet[line] || !rootSet[line] {
			keep[line] = true
		}
	}
	for line := range rightSet {
		if !leftSet[line] && !rootSet[line] {
			keep[line] = true
		}
	}

	result := []string{}
	for _, line := range left {
		if keep[line] {
			result = append(result, line)
			delete(keep, line)
		}
	}
	for _, line := range right {
		if keep[line] {
			result = append(result, line)
			delete(keep, line)
		}
	}
	return result
}

func toSet(lines []string) map[string]bool {
	set := make(map[string]bool, len(lines))
	for _, line := range lines {
		set[line] = true
	}
	return set
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

// Number prefixes each line with its right-aligned 1-based index.
func Number(lines []string) []string {
	width := len(strconv.Itoa(len(lines)))
	result := make([]string, len(lines))
	for i, line := range lines {
		result[i] = fmt.Sprintf("%*d %s", width, i+1, line)
	}
	return result
}
