package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingLevelClamped(t *testing.T) {
	tests := []struct {
		level string
		want  int
	}{
		{"", 1},
		{"0", 1},
		{"-3", 1},
		{"3", 3},
		{"5", 5},
		{"9", 5},
		{"2.0", 2},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			n := &Node{Tag: TagHeading}
			if tt.level != "" {
				n.Attrs = map[string]string{"level": tt.level}
			}
			got, err := n.HeadingLevel()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeadingLevelInvalid(t *testing.T) {
	n := &Node{Tag: TagHeading, Attrs: map[string]string{"level": "big"}}
	_, err := n.HeadingLevel()
	require.ErrorIs(t, err, ErrInvalidAttribute)
}

func TestIndentRejectsNegative(t *testing.T) {
	n := &Node{Tag: TagPara, Attrs: map[string]string{"indent": "-1"}}
	_, err := n.Indent()
	require.ErrorIs(t, err, ErrInvalidAttribute)
}

func TestIndentBounds(t *testing.T) {
	tests := []struct {
		value string
		want  int
		ok    bool
	}{
		{"0", 0, true},
		{"2", 2, true},
		{"3.0", 3, true},
		{"64", MaxIndent, true},
		{"65", 0, false},
		{"1000000000000000", 0, false},
		{"1e300", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			n := &Node{Tag: TagPara, Attrs: map[string]string{"indent": tt.value}}
			got, err := n.Indent()
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidAttribute)
				require.ErrorIs(t, Validate(&Tree{Root: &Node{Tag: TagRoot, Children: []*Node{n}}}), ErrInvalidAttribute)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetIntAttrRejectsNonFinite(t *testing.T) {
	for _, value := range []string{"NaN", "+Inf", "1e300", "-1e300"} {
		n := &Node{Tag: TagHeading, Attrs: map[string]string{"level": value}}
		_, err := n.GetIntAttr("level", 1)
		require.ErrorIs(t, err, ErrInvalidAttribute, value)
	}
}

func TestBulletDefault(t *testing.T) {
	b, err := (&Node{Tag: TagItem}).Bullet()
	require.NoError(t, err)
	assert.Equal(t, BulletPlain, b)

	b, err = (&Node{Tag: TagItem, Attrs: map[string]string{"bullet": "checked-box"}}).Bullet()
	require.NoError(t, err)
	assert.Equal(t, BulletChecked, b)
	assert.True(t, b.Checkbox())

	_, err = (&Node{Tag: TagItem, Attrs: map[string]string{"bullet": "star"}}).Bullet()
	require.ErrorIs(t, err, ErrInvalidAttribute)
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tr := New()
		tr.Root.Append(&Node{Tag: TagPara, Children: []*Node{
			{Tag: TagLink, Attrs: map[string]string{"href": "x"}, Text: "x"},
		}})
		require.NoError(t, Validate(tr))
	})

	t.Run("unknown tag", func(t *testing.T) {
		tr := New()
		tr.Root.Append(&Node{Tag: TagPara, Children: []*Node{{Tag: "blink"}}})
		require.ErrorIs(t, Validate(tr), ErrUnknownTag)
	})

	t.Run("link without href", func(t *testing.T) {
		tr := New()
		tr.Root.Append(&Node{Tag: TagLink, Text: "x"})
		require.ErrorIs(t, Validate(tr), ErrMissingAttribute)
	})

	t.Run("nil root", func(t *testing.T) {
		require.Error(t, Validate(&Tree{}))
	})
}

func TestBuilderTextAndTail(t *testing.T) {
	b := NewBuilder()
	b.Data("before ")
	b.Element(TagLink, map[string]string{"href": "http://a"}, "http://a")
	b.Data(" after")
	b.Data(" more")

	tr, err := b.Close()
	require.NoError(t, err)
	assert.Equal(t, "before ", tr.Root.Text)
	require.Len(t, tr.Root.Children, 1)
	assert.Equal(t, "http://a", tr.Root.Children[0].Text)
	assert.Equal(t, " after more", tr.Root.Children[0].Tail)
}

func TestBuilderMismatchedEnd(t *testing.T) {
	b := NewBuilder()
	b.Start(TagPara, nil)
	b.End(TagDiv)
	_, err := b.Close()
	require.Error(t, err)
}

func TestBuilderUnclosed(t *testing.T) {
	b := NewBuilder()
	b.Start(TagPara, nil)
	_, err := b.Close()
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	input := `{"root":{"children":[{"tag":"h","attrs":{"level":"1"},"text":"Title","tail":"\n"}]},"partial":true}`
	tr, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.True(t, tr.Partial)
	assert.Equal(t, TagRoot, tr.Root.Tag)
	require.Len(t, tr.Root.Children, 1)
	assert.Equal(t, "Title", tr.Root.Children[0].Text)

	_, err = Decode(strings.NewReader(`{}`))
	require.Error(t, err)
}
