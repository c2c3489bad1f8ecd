package entities

import "testing"

func testGroups() Groups {
	records := []Kanji{
		{Symbol: "A", Week: 2, Day: 1, Theme: "w2d1"},
		{Symbol: "B", Week: 1, Day: 2},
		{Symbol: "C", Week: 1, Day: 1, Theme: "w1d1"},
		{Symbol: "D", Week: 1, Day: 2, Theme: "ignored"},
		{Symbol: "E", Week: 2, Day: 1},
	}

	g := Groups{}
	for i, k := range records {
		g.Add(i, k)
	}
	return g
}

func TestGroupsOrdered(t *testing.T) {
	ordered := testGroups().Ordered()

	want := []struct{ week, day int }{{1, 1}, {1, 2}, {2, 1}}
	if len(ordered) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(ordered))
	}
	for i, w := range want {
		if ordered[i].Week != w.week || ordered[i].Day != w.day {
			t.Fatalf("group %d: expected %d-%d, got %d-%d", i, w.week, w.day, ordered[i].Week, ordered[i].Day)
		}
	}

	if ordered[1].Theme != DefaultTheme {
		t.Fatalf("expected theme of first record in lesson, got %q", ordered[1].Theme)
	}
	if got := ordered[2].Indexes; len(got) != 2 || got[0] != 0 || got[1] != 4 {
		t.Fatalf("unexpected dataset indexes: %v", got)
	}
}

func TestGroupsFlattenKeepsCount(t *testing.T) {
	g := testGroups()

	flat := g.Flatten()
	if len(flat) != 5 || g.Count() != 5 {
		t.Fatalf("expected 5 records, got flatten=%d count=%d", len(flat), g.Count())
	}

	want := "CBDAE"
	var got string
	for _, k := range flat {
		got += k.Symbol
	}
	if got != want {
		t.Fatalf("expected flatten order %s, got %s", want, got)
	}
}

func TestWeekTitle(t *testing.T) {
	if got := WeekTitle(1); got != "Неделя 1 - でかける① (Выходим ①)" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := WeekTitle(9); got != "Неделя 9" {
		t.Fatalf("unexpected title: %q", got)
	}
}
