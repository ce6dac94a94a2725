package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	got, ok := ParseTable("TABLE|A|B\n1|2\n3|4")
	require.True(t, ok)
	want := TableData{Header: []string{"A", "B"}, Rows: [][]string{{"1", "2"}, {"3", "4"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseTable mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTable_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"header only", "TABLE|A|B"},
		{"single column", "TABLE|A\n1|2"},
		{"no marker", "A|B\n1|2"},
		{"rows without cells", "TABLE|A|B\njust text\nmore text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseTable(tt.content)
			assert.False(t, ok)
		})
	}
}

func TestParseTable_DropsEmptyCellsAndBlankLines(t *testing.T) {
	got, ok := ParseTable("TABLE| Name | | Score |\n\n Ann | 5 \n| Bob | 7 |")
	require.True(t, ok)
	assert.Equal(t, []string{"Name", "Score"}, got.Header)
	assert.Equal(t, [][]string{{"Ann", "5"}, {"Bob", "7"}}, got.Rows)
}

func TestTableClip(t *testing.T) {
	tbl := TableData{
		Header: []string{"a", "b", "c", "d", "e", "f", "g"},
		Rows: [][]string{
			{"1"}, {"2", "2"}, {"3", "3", "3", "3", "3", "3", "3"}, {"4"}, {"5"}, {"6"}, {"7"},
		},
	}
	c := tbl.Clip(6, 5)
	assert.Equal(t, 5, c.Cols())
	assert.Len(t, c.Rows, 5)
	assert.Equal(t, []string{"1", "", "", "", ""}, c.Rows[0])
	assert.Equal(t, []string{"3", "3", "3", "3", "3"}, c.Rows[2])
	// the original is untouched
	assert.Len(t, tbl.Rows, 7)
}

func TestListItems(t *testing.T) {
	content := "Why Go\n• Fast builds\n  that scale\n- Simple syntax\n1. Great tooling\n2) Static binaries"
	assert.Equal(t, []string{
		"Why Go",
		"Fast builds that scale",
		"Simple syntax",
		"Great tooling",
		"Static binaries",
	}, ListItems(content))

	many := "• a\n• b\n• c\n• d\n• e\n• f\n• g"
	assert.Len(t, ListItems(many), 6)
	assert.Empty(t, ListItems("   "))
}

func TestSplitComparison(t *testing.T) {
	left, right := SplitComparison("Pros: fast, simple. Cons: young ecosystem.")
	assert.Equal(t, "fast, simple.", left)
	assert.Equal(t, "young ecosystem.", right)

	left, right = SplitComparison("Преимущества: скорость. Недостатки: цена.")
	assert.Equal(t, "скорость.", left)
	assert.Equal(t, "цена.", right)

	left, right = SplitComparison("Advantages: speed. Disadvantages: cost.")
	assert.Equal(t, "speed.", left)
	assert.Equal(t, "cost.", right)

	left, right = SplitComparison("alpha beta gamma delta")
	assert.Equal(t, "alpha beta gamma", left)
	assert.Equal(t, "delta", right)
}

func TestProcessSteps(t *testing.T) {
	steps := ProcessSteps("Collect the raw data. Clean it. Train the first model. Evaluate on holdout. Deploy the service. Monitor drift daily. Retire it.")
	assert.Equal(t, []string{
		"Collect the raw data",
		"Train the first model",
		"Evaluate on holdout",
		"Deploy the service",
		"Monitor drift daily",
	}, steps)
}
