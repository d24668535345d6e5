package results

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/adfind/internal/ads"
	"github.com/pders01/adfind/internal/format"
)

func newTestView() *View {
	return New(format.Default(), NewStyles(DefaultPalette()), DefaultCardWidth)
}

func itemsWithIDs(n int) []ads.Item {
	items := make([]ads.Item, n)
	for i := range items {
		items[i] = ads.Item{ID: ads.ItemID(fmt.Sprint(i + 1)), Title: fmt.Sprintf("Ad %d", i+1)}
	}
	return items
}

func TestView_HiddenBeforeFirstRender(t *testing.T) {
	v := newTestView()
	assert.False(t, v.SectionVisible())
	assert.Equal(t, "", v.View())
	_, ok := v.Selected()
	assert.False(t, ok)
}

func TestView_RenderNItems(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			v := newTestView()
			v.Render("phone", itemsWithIDs(n))

			cards := v.Cards()
			require.Len(t, cards, n)
			for i, c := range cards {
				assert.Equal(t, fmt.Sprint(i+1), c.Key)
				assert.Equal(t, fmt.Sprintf("id %d", i+1), c.Meta)
			}
			assert.Equal(t, fmt.Sprintf("Results: %d", n), v.MetaCount())
			assert.Equal(t, fmt.Sprintf("%d pcs", n), v.Badge())
			assert.False(t, v.EmptyVisible())
			assert.True(t, v.SectionVisible())
		})
	}
}

func TestView_RenderEmpty(t *testing.T) {
	v := newTestView()
	v.Render("phone", itemsWithIDs(3))
	v.Render("nothing", nil)

	assert.True(t, v.EmptyVisible())
	assert.True(t, v.SectionVisible())
	assert.Empty(t, v.Cards())
	assert.Equal(t, "Results: 0", v.MetaCount())
	assert.Equal(t, "0 pcs", v.Badge())
	assert.Contains(t, v.View(), EmptyPlaceholder)
}

func TestView_QueryEcho(t *testing.T) {
	v := newTestView()
	v.Render("", nil)
	assert.Equal(t, "—", v.QueryEcho())

	v.Render("iphone 13", nil)
	assert.Equal(t, "iphone 13", v.QueryEcho())
}

func TestView_FullReplace(t *testing.T) {
	v := newTestView()
	v.Render("a", itemsWithIDs(4))
	v.Next()
	v.Next()
	require.Equal(t, 2, v.Cursor())

	v.Render("b", []ads.Item{{ID: "99"}})
	cards := v.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "99", cards[0].Key)
	assert.Equal(t, 0, v.Cursor())
}

func TestView_LocalScenario(t *testing.T) {
	v := newTestView()
	v.Render("iphone 13", []ads.Item{{ID: "1", Title: "iPhone 13", Price: ads.NewPrice(25000), City: "Bishkek"}})

	cards := v.Cards()
	require.Len(t, cards, 1)
	c := cards[0]
	assert.Equal(t, "iPhone 13", c.Title)
	assert.Equal(t, format.FormatPrice(ads.NewPrice(25000)), c.Price)
	assert.True(t, strings.HasSuffix(c.Price, " сом"))
	assert.Equal(t, "Bishkek", c.City)
	assert.Equal(t, format.LocalSearchChip, c.Chip)
	assert.False(t, c.Scored)
	assert.Equal(t, "No description", c.Description)
	assert.Equal(t, "#", c.Href)
	assert.Equal(t, "Open on Lalafo", c.LinkLabel)
}

func TestView_SemanticScenario(t *testing.T) {
	v := newTestView()
	v.Render("toyota", []ads.Item{{ID: "7", Title: "Toyota Camry", Score: ads.NewScore(0.912)}})

	c := v.Cards()[0]
	assert.Equal(t, "score 0.912", c.Chip)
	assert.True(t, c.Scored)
	assert.Equal(t, format.NegotiablePrice, c.Price)
	assert.Equal(t, "City not specified", c.City)
	assert.Equal(t, "id 7", c.Meta)
}

func TestView_CursorNavigation(t *testing.T) {
	v := newTestView()
	v.SetSize(DefaultCardWidth*2+columnGap, 0)
	require.Equal(t, 2, v.Columns())

	v.Render("q", itemsWithIDs(5))
	v.Prev()
	assert.Equal(t, 0, v.Cursor())

	v.Down()
	assert.Equal(t, 2, v.Cursor())
	v.Next()
	assert.Equal(t, 3, v.Cursor())
	v.Down()
	assert.Equal(t, 4, v.Cursor(), "cursor clamps to the last card")
	v.Up()
	assert.Equal(t, 2, v.Cursor())

	c, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "3", c.Key)
}

func TestView_Columns(t *testing.T) {
	v := newTestView()
	v.SetSize(10, 0)
	assert.Equal(t, 1, v.Columns())
	v.SetSize(DefaultCardWidth*3+2*columnGap, 0)
	assert.Equal(t, 3, v.Columns())
}

func TestView_ScrollsToSelection(t *testing.T) {
	v := newTestView()
	v.SetSize(DefaultCardWidth, headerLines+v.cardHeight())
	v.Render("q", itemsWithIDs(4))

	assert.Contains(t, v.View(), "Ad 1")
	v.Next()
	v.Next()
	out := v.View()
	assert.Contains(t, out, "Ad 3")
	assert.NotContains(t, out, "Ad 1")
}

func TestView_RendersCardText(t *testing.T) {
	v := newTestView()
	v.SetSize(120, 40)
	v.Render("toyota", []ads.Item{{ID: "7", Title: "Toyota Camry", Score: ads.NewScore(0.912), URL: "https://lalafo.kg/7"}})

	out := v.View()
	for _, want := range []string{"toyota", "1 pcs", "score 0.912", "Toyota Camry", "Price negotiable", "Open on Lalafo", "id 7"} {
		assert.Contains(t, out, want)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", TruncateEnd("abc", 0))
	assert.Equal(t, "abc", TruncateEnd("abc", 3))
	assert.Equal(t, "ab…", TruncateEnd("abcd", 3))
	assert.Equal(t, "…", TruncateEnd("abcd", 1))

	assert.Equal(t, "abcdef", TruncateMiddle("abcdef", 6))
	assert.Equal(t, "ab…ef", TruncateMiddle("abcdef", 5))
	assert.Equal(t, "…f", TruncateMiddle("abcdef", 2))
}
