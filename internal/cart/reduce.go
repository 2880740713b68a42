package cart

import "storefront/internal/domain"

// Reduce returns the state that results from applying a to s. It never
// modifies s and never fails; unknown kinds return s unchanged.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case KindAddItem:
		return addItem(s, a.Item)
	case KindRemoveItem:
		return filter(s, func(item domain.CartLineItem) bool {
			return item.Product.ID != a.ProductID
		})
	case KindRemoveSlot:
		if a.Slot == nil {
			return s
		}
		return filter(s, func(item domain.CartLineItem) bool {
			return item.Key() != *a.Slot
		})
	case KindUpdateQuantity:
		return updateQuantity(s, a)
	case KindClearCart:
		return Empty()
	default:
		return s
	}
}

func addItem(s State, item domain.CartLineItem) State {
	next := s.clone()
	key := item.Key()
	for i := range next.Items {
		if next.Items[i].Key() == key {
			next.Items[i].Quantity += item.Quantity
			return withItems(next.Items)
		}
	}
	return withItems(append(next.Items, item))
}

func filter(s State, keep func(domain.CartLineItem) bool) State {
	items := make([]domain.CartLineItem, 0, len(s.Items))
	for _, item := range s.Items {
		if keep(item) {
			items = append(items, item)
		}
	}
	return withItems(items)
}

func updateQuantity(s State, a Action) State {
	matches := func(item domain.CartLineItem) bool {
		if a.Slot != nil {
			return item.Key() == *a.Slot
		}
		return item.Product.ID == a.ProductID
	}
	if a.Quantity <= 0 {
		return filter(s, func(item domain.CartLineItem) bool { return !matches(item) })
	}
	next := s.clone()
	for i := range next.Items {
		if matches(next.Items[i]) {
			next.Items[i].Quantity = a.Quantity
		}
	}
	return withItems(next.Items)
}
