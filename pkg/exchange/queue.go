package exchange

import "container/heap"

// sideQueue is one side of a book: a price-time priority queue over resting
// orders. Bids rank price descending, asks ascending; equal prices rank by
// orderId ascending, which is strict FIFO because ids are monotonic.
type sideQueue struct {
	bids   bool
	orders []*Order
}

func newSideQueue(bids bool) *sideQueue {
	return &sideQueue{bids: bids}
}

func (q *sideQueue) Len() int { return len(q.orders) }

func (q *sideQueue) Less(i, j int) bool {
	a, b := q.orders[i], q.orders[j]
	if a.Price != b.Price {
		if q.bids {
			return a.Price > b.Price
		}
		return a.Price < b.Price
	}
	return a.OrderID < b.OrderID
}

func (q *sideQueue) Swap(i, j int) {
	q.orders[i], q.orders[j] = q.orders[j], q.orders[i]
}

func (q *sideQueue) Push(x any) {
	q.orders = append(q.orders, x.(*Order))
}

func (q *sideQueue) Pop() any {
	old := q.orders
	n := len(old)
	o := old[n-1]
	old[n-1] = nil
	q.orders = old[:n-1]
	return o
}

// peek returns the highest-priority resting order without removing it.
func (q *sideQueue) peek() *Order {
	if len(q.orders) == 0 {
		return nil
	}
	return q.orders[0]
}

func (q *sideQueue) push(o *Order) {
	heap.Push(q, o)
}

// pop removes and returns the highest-priority resting order.
func (q *sideQueue) pop() *Order {
	if len(q.orders) == 0 {
		return nil
	}
	return heap.Pop(q).(*Order)
}
