// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `<html><body>
<table>
<tr>
  <td class="label--inline" data-label="Psalms:"><a href="/psa/2">2</a></td>
  <td class="label--inline" data-label="After What Scripture:"><a href="/dan/7">Dan 7:28</a></td>
</tr>
<tr>
  <td class="label--inline" data-label="Psalms:"><a href="/psa/105">105</a>, <a href="/psa/106">106</a></td>
  <td class="label--inline" data-label="After What Scripture:"><a href="/1ch/16">1Ch 16:7</a></td>
</tr>
<tr>
  <td class="label--inline" data-label="Psalms:"><a href="/psa/18">18</a></td>
  <td class="label--inline" data-label="After What Scripture:"><a href="/2sa/22">2Sa 22:1</a>, <a href="/1ch/16">1Ch 16:7</a></td>
</tr>
</table>
</body></html>`

func TestParseTable(t *testing.T) {
	psalms, related, err := ParseTable(sampleTable)
	require.NoError(t, err)

	require.Len(t, psalms, 3)
	require.Len(t, related, 3)

	assert.Equal(t, []string{"2"}, psalms[0])
	assert.Equal(t, []string{"105", "106"}, psalms[1])
	assert.Equal(t, []string{"Dan 7:28"}, related[0])
	assert.Equal(t, []string{"2Sa 22:1", "1Ch 16:7"}, related[2])
}

func TestParseTableIgnoresUnlabeledCells(t *testing.T) {
	content := `<table><tr>
		<td><a>ignored</a></td>
		<td data-label="Psalms:"><a>23</a></td>
		<td data-label="After What Scripture:"><a>2Sa 7:1</a></td>
	</tr></table>`

	psalms, related, err := ParseTable(content)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"23"}}, psalms)
	assert.Equal(t, [][]string{{"2Sa 7:1"}}, related)
}

func TestParseTableNestedMarkupInLinks(t *testing.T) {
	content := `<table><tr>
		<td data-label="Psalms:"><a><span>90</span></a></td>
		<td data-label="After What Scripture:"><a>Deu <b>33:1</b></a></td>
	</tr></table>`

	psalms, related, err := ParseTable(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"90"}, psalms[0])
	assert.Equal(t, []string{"Deu 33:1"}, related[0])
}

func TestParseTableEmptyCellKept(t *testing.T) {
	// A labeled cell with no links still occupies its row position so the
	// two columns stay aligned.
	content := `<table>
	<tr><td data-label="Psalms:"></td>
	    <td data-label="After What Scripture:"><a>Gen 1:1</a></td></tr>
	<tr><td data-label="Psalms:"><a>2</a></td>
	    <td data-label="After What Scripture:"><a>Dan 7:28</a></td></tr>
	</table>`

	psalms, related, err := ParseTable(content)
	require.NoError(t, err)
	require.Len(t, psalms, 2)
	assert.Empty(t, psalms[0])
	assert.Equal(t, []string{"2"}, psalms[1])
	assert.Equal(t, []string{"Dan 7:28"}, related[1])
}

func TestParseTableNoCells(t *testing.T) {
	_, _, err := ParseTable("<html><body><p>maintenance page</p></body></html>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no labeled citation cells")
}
