package wizard

// Navigator tracks the current position in the question sequence. All bound
// violations are no-ops, not errors: the last question is not a terminal
// state, finishing is an explicit action on the session.
type Navigator struct {
	index int
	count int
}

func NewNavigator(count int) *Navigator {
	if count < 0 {
		count = 0
	}
	return &Navigator{count: count}
}

// Index returns the current position. Meaningless when Count is zero.
func (n *Navigator) Index() int {
	return n.index
}

func (n *Navigator) Count() int {
	return n.count
}

func (n *Navigator) AtFirst() bool {
	return n.count > 0 && n.index == 0
}

func (n *Navigator) AtLast() bool {
	return n.count > 0 && n.index == n.count-1
}

// Next advances one position and reports whether it moved.
func (n *Navigator) Next() bool {
	if n.count == 0 || n.AtLast() {
		return false
	}
	n.index++
	return true
}

// Previous steps back one position and reports whether it moved.
func (n *Navigator) Previous() bool {
	if n.count == 0 || n.AtFirst() {
		return false
	}
	n.index--
	return true
}

// JumpTo moves to index, clamped to the valid range. Used by resume logic.
func (n *Navigator) JumpTo(index int) {
	if n.count == 0 {
		n.index = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index > n.count-1 {
		index = n.count - 1
	}
	n.index = index
}
