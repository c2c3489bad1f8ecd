package entities

import (
	"fmt"
	"sort"
)

// weekTitles holds the textbook titles of each study week.
var weekTitles = map[int]string{
	1: "でかける① (Выходим ①)",
	2: "でかける② (Выходим ②)",
	3: "つかう (Использовать)",
}

// WeekTitle returns the display title for a study week.
func WeekTitle(week int) string {
	if title, ok := weekTitles[week]; ok {
		return fmt.Sprintf("Неделя %d - %s", week, title)
	}
	return fmt.Sprintf("Неделя %d", week)
}

// DayGroup holds the records of one (week, day) lesson in dataset order.
type DayGroup struct {
	Week    int     `json:"week"`
	Day     int     `json:"day"`
	Theme   string  `json:"theme"`
	Kanji   []Kanji `json:"kanji"`
	Indexes []int   `json:"indexes"` // dataset index of each entry in Kanji
}

// Groups maps week → day → lesson.
type Groups map[int]map[int]*DayGroup

// Add appends the record at dataset index i to its lesson.
// The lesson theme is taken from the first record that lands in it.
func (g Groups) Add(i int, k Kanji) {
	days, ok := g[k.Week]
	if !ok {
		days = make(map[int]*DayGroup)
		g[k.Week] = days
	}

	group, ok := days[k.Day]
	if !ok {
		group = &DayGroup{Week: k.Week, Day: k.Day, Theme: k.ThemeOrDefault()}
		days[k.Day] = group
	}

	group.Kanji = append(group.Kanji, k)
	group.Indexes = append(group.Indexes, i)
}

// Weeks returns the week keys in ascending order.
func (g Groups) Weeks() []int {
	weeks := make([]int, 0, len(g))
	for w := range g {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	return weeks
}

// Days returns the day keys of a week in ascending order.
func (g Groups) Days(week int) []int {
	days := make([]int, 0, len(g[week]))
	for d := range g[week] {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// Ordered returns every lesson sorted by week, then day.
func (g Groups) Ordered() []*DayGroup {
	var out []*DayGroup
	for _, w := range g.Weeks() {
		for _, d := range g.Days(w) {
			out = append(out, g[w][d])
		}
	}
	return out
}

// Flatten returns all grouped records, lesson by lesson.
func (g Groups) Flatten() []Kanji {
	var out []Kanji
	for _, group := range g.Ordered() {
		out = append(out, group.Kanji...)
	}
	return out
}

// Count returns the number of grouped records.
func (g Groups) Count() int {
	n := 0
	for _, days := range g {
		for _, group := range days {
			n += len(group.Kanji)
		}
	}
	return n
}
