package orderbookv1

// Registry is the source of truth for order lifecycle state. An order lives
// in exactly one of three maps: active, filled or canceled. Ids never leave
// a terminal map and never re-enter active, so an id used once is retired
// for good.
type Registry struct {
	active   map[string]*Order
	filled   map[string]*Order
	canceled map[string]*Order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		active:   make(map[string]*Order),
		filled:   make(map[string]*Order),
		canceled: make(map[string]*Order),
	}
}

// Contains reports whether the id exists in any lifecycle state.
func (r *Registry) Contains(id string) bool {
	if _, ok := r.active[id]; ok {
		return true
	}
	if _, ok := r.filled[id]; ok {
		return true
	}
	_, ok := r.canceled[id]
	return ok
}

// IsActive reports whether the id belongs to an active order.
func (r *Registry) IsActive(id string) bool {
	_, ok := r.active[id]
	return ok
}

// IsFilled reports whether the id belongs to a filled order.
func (r *Registry) IsFilled(id string) bool {
	_, ok := r.filled[id]
	return ok
}

// Active returns the active order for id, if any.
func (r *Registry) Active(id string) (*Order, bool) {
	order, ok := r.active[id]
	return order, ok
}

// InsertActive registers a new order as active.
func (r *Registry) InsertActive(order *Order) {
	r.active[order.ID] = order
}

// InsertFilled registers an order directly as filled, for incoming orders
// fully consumed on arrival that were never active.
func (r *Registry) InsertFilled(order *Order) {
	r.filled[order.ID] = order
}

// InsertCanceled registers an order directly as canceled. Only snapshot
// restore uses this.
func (r *Registry) InsertCanceled(order *Order) {
	r.canceled[order.ID] = order
}

// MoveToFilled transitions an active order into the filled state.
// It reports whether the id was active.
func (r *Registry) MoveToFilled(id string) bool {
	order, ok := r.active[id]
	if !ok {
		return false
	}
	delete(r.active, id)
	r.filled[id] = order
	return true
}

// MoveToCanceled transitions an active order into the canceled state.
// It reports whether the id was active.
func (r *Registry) MoveToCanceled(id string) bool {
	order, ok := r.active[id]
	if !ok {
		return false
	}
	delete(r.active, id)
	r.canceled[id] = order
	return true
}

// ActiveOrders returns all active orders in unspecified map order.
func (r *Registry) ActiveOrders() []*Order {
	return collect(r.active)
}

// FilledOrders returns all filled orders in unspecified map order.
func (r *Registry) FilledOrders() []*Order {
	return collect(r.filled)
}

// CanceledOrders returns all canceled orders in unspecified map order.
func (r *Registry) CanceledOrders() []*Order {
	return collect(r.canceled)
}

// ActiveCount returns the number of active orders.
func (r *Registry) ActiveCount() int {
	return len(r.active)
}

func collect(orders map[string]*Order) []*Order {
	result := make([]*Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, order)
	}
	return result
}
