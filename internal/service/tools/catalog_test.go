package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndGet(t *testing.T) {
	c := New()

	require.NoError(t, c.Register(Spec{Name: "vector_search", Parameters: []string{"query"}}))

	spec, ok := c.Get("vector_search")
	require.True(t, ok)
	assert.Equal(t, []string{"query"}, spec.Parameters)

	spec, ok = c.Get("  Vector_Search ")
	require.True(t, ok)
	assert.Equal(t, "vector_search", spec.Name)

	_, ok = c.Get("unknown_tool")
	assert.False(t, ok)
}

func TestRegisterRejectsDuplicatesAndBlankNames(t *testing.T) {
	c := New()

	require.NoError(t, c.Register(Spec{Name: "chat_with_context"}))
	assert.Error(t, c.Register(Spec{Name: "chat_with_context"}))
	assert.Error(t, c.Register(Spec{Name: "  "}))

	assert.Len(t, c.ListSpecs(), 1)
}

func TestListSpecsPreservesOrder(t *testing.T) {
	c := New(
		Spec{Name: "first"},
		Spec{Name: "second"},
		Spec{Name: "third"},
	)

	specs := c.ListSpecs()

	require.Len(t, specs, 3)
	assert.Equal(t, "first", specs[0].Name)
	assert.Equal(t, "second", specs[1].Name)
	assert.Equal(t, "third", specs[2].Name)
}

func TestDefaults(t *testing.T) {
	c := New(Defaults()...)

	specs := c.ListSpecs()
	require.Len(t, specs, 8)

	for _, name := range []string{
		"vector_search",
		"add_document",
		"chat_with_context",
		"get_chat_history",
		"search_by_category",
		"search_by_date_range",
		"upload_pdf_manual",
		"ask_pdf_manual",
	} {
		_, ok := c.Get(name)
		assert.True(t, ok, "missing tool %s", name)
	}
}
