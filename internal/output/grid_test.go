package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGrid(t *testing.T) {
	columns := []Column{{Header: "Name"}, {Header: "Count", Align: AlignRight}}
	rows := [][]string{{"Person", "10"}, {"Company", "3"}}

	var buf bytes.Buffer
	require.NoError(t, RenderGrid(&buf, columns, rows))

	expected := strings.Join([]string{
		"+---------+---------+",
		"| Name    |   Count |",
		"+=========+=========+",
		"| Person  |      10 |",
		"+---------+---------+",
		"| Company |       3 |",
		"+---------+---------+",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestRenderGrid_NoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderGrid(&buf, []Column{{Header: "Relationship"}}, nil))

	expected := "+----------------+\n" +
		"| Relationship   |\n" +
		"+================+\n"
	assert.Equal(t, expected, buf.String())
}

func TestRenderGrid_WidthIsWidestCell(t *testing.T) {
	columns := []Column{{Header: "L"}}
	rows := [][]string{{"short"}, {"a much longer label"}}

	var buf bytes.Buffer
	require.NoError(t, RenderGrid(&buf, columns, rows))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := len("a much longer label") + 4
	for _, line := range lines {
		assert.Equal(t, want, len(line), "line %q", line)
	}
}

func TestRenderGrid_WideRunes(t *testing.T) {
	columns := []Column{{Header: "Label"}}
	rows := [][]string{{"人物"}, {"Person"}}

	var buf bytes.Buffer
	require.NoError(t, RenderGrid(&buf, columns, rows))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	width := runewidth.StringWidth(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, runewidth.StringWidth(line), "line %q", line)
	}
}

func TestRenderGrid_ShortRowIsPadded(t *testing.T) {
	columns := []Column{{Header: "A"}, {Header: "B"}}

	var buf bytes.Buffer
	require.NoError(t, RenderGrid(&buf, columns, [][]string{{"x"}}))
	assert.Contains(t, buf.String(), "| x   |     |")
}

func TestRenderGrid_MultiLineCell(t *testing.T) {
	columns := []Column{{Header: "Name"}, {Header: "Count", Align: AlignRight}}
	rows := [][]string{{"Person\nHuman", "10"}, {"Co", "3"}}

	var buf bytes.Buffer
	require.NoError(t, RenderGrid(&buf, columns, rows))

	expected := strings.Join([]string{
		"+--------+---------+",
		"| Name   |   Count |",
		"+========+=========+",
		"| Person |      10 |",
		"| Human  |         |",
		"+--------+---------+",
		"| Co     |       3 |",
		"+--------+---------+",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestRenderGrid_MultiLineWidthIsLongestLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderGrid(&buf, []Column{{Header: "L"}}, [][]string{{"ab\nabcdefgh\nabc"}}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	for _, line := range lines {
		assert.Equal(t, len("abcdefgh")+4, len(line), "line %q", line)
	}
}
