package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder_Defaults(t *testing.T) {
	t.Parallel()

	err := Newf("something broke").Build()

	assert.Equal(t, ComponentUnknown, err.Component)
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Equal(t, "something broke", err.Error())
}

func TestErrorBuilder_FullChain(t *testing.T) {
	t.Parallel()

	err := Newf("fetch failed after %d attempts", 3).
		Category(CategoryNetwork).
		Component("giantbomb").
		Context("endpoint", "rating_boards").
		Context("attempts", 3).
		Build()

	assert.Equal(t, "giantbomb", err.Component)
	assert.Equal(t, CategoryNetwork, err.Category)

	ctx := err.GetContext()
	assert.Equal(t, "rating_boards", ctx["endpoint"])
	assert.Equal(t, 3, ctx["attempts"])

	// The returned context is a copy
	ctx["endpoint"] = "mutated"
	assert.Equal(t, "rating_boards", err.GetContext()["endpoint"])
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	base := NewStd("connection refused")
	err := New(fmt.Errorf("request failed: %w", base)).
		Category(CategoryNetwork).
		Build()

	assert.True(t, Is(err, base))

	var ee *EnhancedError
	require.True(t, As(err, &ee))
	assert.Equal(t, CategoryNetwork, ee.Category)
}

func TestIsCategory(t *testing.T) {
	t.Parallel()

	err := Newf("no rating board with external id 999").
		Category(CategoryNotFound).
		Build()

	assert.True(t, IsCategory(err, CategoryNotFound))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsCategory(err, CategoryDatabase))
	assert.False(t, IsCategory(NewStd("plain"), CategoryNotFound))
}

func TestPriorityValidation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PriorityHigh, Newf("x").Priority(PriorityHigh).Build().Priority)
	// Invalid priorities fall back to medium
	assert.Equal(t, PriorityMedium, Newf("x").Priority("urgent").Build().Priority)
	assert.Empty(t, Newf("x").Build().Priority)
}
