package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func product(id, price string) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price)}
}

func line(p domain.Product, typ, opt, field string, qty int) domain.CartLineItem {
	return domain.CartLineItem{Product: p, SelectedType: typ, SelectedOption: opt, SelectedField: field, Quantity: qty}
}

func assertTotal(t *testing.T, want string, s State) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(s.Total), "total: want %s, got %s", want, s.Total)
	assert.True(t, domain.SumLines(s.Items).Equal(s.Total), "total drifted from line sum")
}

func TestReduceAddItemMergesSameSlot(t *testing.T) {
	a := product("A", "10.00")
	s := Reduce(Empty(), AddItem(line(a, "type1", "opt1", "fieldX", 1)))
	s = Reduce(s, AddItem(line(a, "type1", "opt1", "fieldX", 2)))

	require.Len(t, s.Items, 1)
	assert.Equal(t, 3, s.Items[0].Quantity)
	assertTotal(t, "30", s)
}

func TestReduceAddItemDifferentAttributeCreatesSlot(t *testing.T) {
	a := product("A", "10.00")
	base := Reduce(Empty(), AddItem(line(a, "type1", "opt1", "fieldX", 1)))

	variants := []domain.CartLineItem{
		line(a, "type2", "opt1", "fieldX", 1),
		line(a, "type1", "opt2", "fieldX", 1),
		line(a, "type1", "opt1", "fieldY", 1),
		line(product("B", "10.00"), "type1", "opt1", "fieldX", 1),
	}
	for _, v := range variants {
		s := Reduce(base, AddItem(v))
		assert.Len(t, s.Items, 2, "variant %+v", v.Key())
		assertTotal(t, "20", s)
	}
}

func TestReduceAddItemKeepsPositionAndDoesNotMutateInput(t *testing.T) {
	a := product("A", "1.10")
	b := product("B", "2.20")
	s := Reduce(Empty(), AddItem(line(a, "t", "o", "f", 1)))
	s = Reduce(s, AddItem(line(b, "t", "o", "f", 1)))
	before := s

	next := Reduce(s, AddItem(line(a, "t", "o", "f", 4)))

	require.Len(t, next.Items, 2)
	assert.Equal(t, "A", next.Items[0].Product.ID)
	assert.Equal(t, 5, next.Items[0].Quantity)
	assert.Equal(t, 1, before.Items[0].Quantity)
	assertTotal(t, "7.70", next)
	assertTotal(t, "3.30", before)
}

func TestReduceTotalIsExactOverManyAdds(t *testing.T) {
	p := product("A", "0.10")
	q := product("B", "299.99")
	s := Empty()
	for i := 0; i < 100; i++ {
		s = Reduce(s, AddItem(line(p, "t", "o", "f", 1)))
		s = Reduce(s, AddItem(line(q, "t", "o", "f", 3)))
	}
	require.Len(t, s.Items, 2)
	assertTotal(t, "90007", s)
}

func TestReduceRemoveItemDropsEveryVariant(t *testing.T) {
	a := product("A", "10")
	b := product("B", "5.50")
	s := Reduce(Empty(), AddItem(line(a, "t1", "o1", "f", 1)))
	s = Reduce(s, AddItem(line(a, "t2", "o1", "f", 2)))
	s = Reduce(s, AddItem(line(b, "t1", "o1", "f", 2)))

	s = Reduce(s, RemoveItem("A"))

	require.Len(t, s.Items, 1)
	assert.Equal(t, "B", s.Items[0].Product.ID)
	assertTotal(t, "11", s)
}

func TestReduceRemoveMissingProductIsNoop(t *testing.T) {
	s := Reduce(Empty(), AddItem(line(product("A", "3"), "t", "o", "f", 2)))
	next := Reduce(s, RemoveItem("missing"))
	assert.Equal(t, s.Items, next.Items)
	assertTotal(t, "6", next)
}

func TestReduceRemoveSlotKeepsOtherVariants(t *testing.T) {
	a := product("A", "10")
	first := line(a, "t1", "o1", "f", 1)
	s := Reduce(Empty(), AddItem(first))
	s = Reduce(s, AddItem(line(a, "t2", "o1", "f", 2)))

	s = Reduce(s, RemoveSlot(first.Key()))

	require.Len(t, s.Items, 1)
	assert.Equal(t, "t2", s.Items[0].SelectedType)
	assertTotal(t, "20", s)
}

func TestReduceUpdateQuantity(t *testing.T) {
	a := product("A", "2.50")
	b := product("B", "1")
	s := Reduce(Empty(), AddItem(line(a, "t", "o", "f", 1)))
	s = Reduce(s, AddItem(line(b, "t", "o", "f", 1)))

	s = Reduce(s, UpdateQuantity("A", 4))
	require.Len(t, s.Items, 2)
	assert.Equal(t, 4, s.Items[0].Quantity)
	assertTotal(t, "11", s)

	s = Reduce(s, UpdateQuantity("A", 0))
	require.Len(t, s.Items, 1)
	assert.Equal(t, "B", s.Items[0].Product.ID)
	assertTotal(t, "1", s)

	s = Reduce(s, UpdateQuantity("B", -3))
	assert.Empty(t, s.Items)
	assertTotal(t, "0", s)
}

func TestReduceUpdateSlotQuantityTouchesOneSlot(t *testing.T) {
	a := product("A", "1")
	first := line(a, "t1", "o", "f", 1)
	s := Reduce(Empty(), AddItem(first))
	s = Reduce(s, AddItem(line(a, "t2", "o", "f", 1)))

	s = Reduce(s, UpdateSlotQuantity(first.Key(), 7))

	assert.Equal(t, 7, s.Items[0].Quantity)
	assert.Equal(t, 1, s.Items[1].Quantity)
	assertTotal(t, "8", s)
}

func TestReduceClearCart(t *testing.T) {
	s := Reduce(Empty(), AddItem(line(product("A", "9.99"), "t", "o", "f", 3)))
	s = Reduce(s, ClearCart())
	assert.Empty(t, s.Items)
	assert.True(t, s.Total.IsZero())

	assert.Empty(t, Reduce(Empty(), ClearCart()).Items)
}

func TestReduceUnknownActionIsIdentity(t *testing.T) {
	s := Reduce(Empty(), AddItem(line(product("A", "4"), "t", "o", "f", 1)))
	next := Reduce(s, Action{Kind: "applyCoupon"})
	assert.Equal(t, s, next)

	assert.Equal(t, s, Reduce(s, Action{Kind: KindRemoveSlot}))
}

func TestSessionIsSingleWriter(t *testing.T) {
	sess := NewSession()
	a := product("A", "10")
	sess.Dispatch(AddItem(line(a, "t", "o", "f", 2)))

	snapshot := sess.State()
	snapshot.Items[0].Quantity = 99

	got := sess.State()
	assert.Equal(t, 2, got.Items[0].Quantity)
	assertTotal(t, "20", got)
}

func TestRestoreRecomputesTotal(t *testing.T) {
	saved := State{
		Items: []domain.CartLineItem{line(product("A", "10"), "t", "o", "f", 2)},
		Total: decimal.RequireFromString("1"),
	}
	sess := Restore(saved)
	assertTotal(t, "20", sess.State())

	state := sess.Dispatch(RemoveItem("A"), AddItem(line(product("B", "3"), "t", "o", "f", 1)))
	require.Len(t, state.Items, 1)
	assertTotal(t, "3", state)
}
