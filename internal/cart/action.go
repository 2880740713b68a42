package cart

import "storefront/internal/domain"

// Kind names a cart transition.
type Kind string

const (
	KindAddItem        Kind = "addItem"
	KindRemoveItem     Kind = "removeItem"
	KindRemoveSlot     Kind = "removeSlot"
	KindUpdateQuantity Kind = "updateQuantity"
	KindClearCart      Kind = "clearCart"
)

// Action is one input to Reduce. Only the fields relevant to Kind are read.
type Action struct {
	Kind      Kind
	Item      domain.CartLineItem
	ProductID string
	Slot      *domain.SlotKey
	Quantity  int
}

// AddItem merges item into the slot with the same key or appends it.
func AddItem(item domain.CartLineItem) Action {
	return Action{Kind: KindAddItem, Item: item}
}

// RemoveItem drops every slot of the product, whatever its selection.
func RemoveItem(productID string) Action {
	return Action{Kind: KindRemoveItem, ProductID: productID}
}

// RemoveSlot drops exactly one slot.
func RemoveSlot(key domain.SlotKey) Action {
	return Action{Kind: KindRemoveSlot, Slot: &key, ProductID: key.ProductID}
}

// UpdateQuantity sets the quantity of every slot of the product.
// A quantity of zero or less removes those slots.
func UpdateQuantity(productID string, quantity int) Action {
	return Action{Kind: KindUpdateQuantity, ProductID: productID, Quantity: quantity}
}

// UpdateSlotQuantity is UpdateQuantity scoped to one slot.
func UpdateSlotQuantity(key domain.SlotKey, quantity int) Action {
	return Action{Kind: KindUpdateQuantity, ProductID: key.ProductID, Slot: &key, Quantity: quantity}
}

// ClearCart resets the cart.
func ClearCart() Action {
	return Action{Kind: KindClearCart}
}
