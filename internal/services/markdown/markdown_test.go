package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, src string) string {
	t.Helper()
	out, err := Render(src)
	require.NoError(t, err)
	return out
}

func TestInlineFormatting(t *testing.T) {
	out := render(t, "Revenue is **up** by *12%* in `Q3`")
	assert.Contains(t, out, "<strong>up</strong>")
	assert.Contains(t, out, "by 12% in")
	assert.NotContains(t, out, "<em>")
	assert.Contains(t, out, "<code>Q3</code>")
}

func TestBulletList(t *testing.T) {
	out := render(t, "- Cocoa\n- Coffee")
	assert.Contains(t, out, "<ul>")
	assert.Contains(t, out, "<li>Cocoa</li>")
	assert.Contains(t, out, "<li>Coffee</li>")
}

func TestOrderedListStaysText(t *testing.T) {
	out := render(t, "1. first\n2. **second**")
	assert.NotContains(t, out, "<ol")
	assert.NotContains(t, out, "<li>")
	assert.Contains(t, out, "<p>1. first</p>")
	assert.Contains(t, out, "<p>2. <strong>second</strong></p>")

	out = render(t, "- Cocoa\n  3. nested")
	assert.Contains(t, out, "<li>Cocoa")
	assert.Contains(t, out, "3. nested")
	assert.NotContains(t, out, "<ol")
}

func TestFencedCode(t *testing.T) {
	out := render(t, "```sql\nSELECT 1 < 2;\n```")
	assert.Contains(t, out, `<pre><code class="language-sql">`)
	assert.Contains(t, out, "SELECT 1 &lt; 2;")
}

func TestLineBreaks(t *testing.T) {
	out := render(t, "first\nsecond")
	assert.Contains(t, out, "first<br")
}

func TestRawHTMLIsEscaped(t *testing.T) {
	out := render(t, "<script>alert(1)</script> and <b>bold</b>")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestUnsupportedConstructsStayText(t *testing.T) {
	out := render(t, "# Title\n[link](javascript:alert(1))")
	assert.NotContains(t, out, "<h1")
	assert.NotContains(t, out, "<a ")
	assert.Contains(t, out, "# Title")
}
