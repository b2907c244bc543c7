package wizard

import "testing"

func TestNavigatorBounds(t *testing.T) {
	cases := []struct {
		name  string
		count int
		steps func(n *Navigator)
		want  int
	}{
		{
			name:  "starts_at_zero",
			count: 3,
			steps: func(n *Navigator) {},
			want:  0,
		},
		{
			name:  "next_advances",
			count: 3,
			steps: func(n *Navigator) { n.Next() },
			want:  1,
		},
		{
			name:  "next_stops_at_last",
			count: 3,
			steps: func(n *Navigator) { n.Next(); n.Next(); n.Next(); n.Next() },
			want:  2,
		},
		{
			name:  "previous_stops_at_first",
			count: 3,
			steps: func(n *Navigator) { n.Previous(); n.Previous() },
			want:  0,
		},
		{
			name:  "empty_sequence_never_moves",
			count: 0,
			steps: func(n *Navigator) { n.Next(); n.Previous() },
			want:  0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewNavigator(tc.count)
			tc.steps(n)
			if n.Index() != tc.want {
				t.Fatalf("index=%d, want %d", n.Index(), tc.want)
			}
		})
	}
}

func TestNavigatorReportsMovement(t *testing.T) {
	n := NewNavigator(2)
	if !n.Next() {
		t.Fatal("Next at first should advance")
	}
	if n.Next() {
		t.Fatal("Next at last should not advance")
	}
	if !n.Previous() {
		t.Fatal("Previous at last should step back")
	}
	if n.Previous() {
		t.Fatal("Previous at first should not step back")
	}
}

func TestNavigatorJumpToClamps(t *testing.T) {
	cases := []struct {
		name   string
		count  int
		target int
		want   int
	}{
		{name: "within_range", count: 5, target: 3, want: 3},
		{name: "below_range", count: 5, target: -2, want: 0},
		{name: "above_range", count: 5, target: 99, want: 4},
		{name: "empty", count: 0, target: 4, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewNavigator(tc.count)
			n.JumpTo(tc.target)
			if n.Index() != tc.want {
				t.Fatalf("JumpTo(%d) landed at %d, want %d", tc.target, n.Index(), tc.want)
			}
		})
	}
}

func TestNavigatorEdges(t *testing.T) {
	n := NewNavigator(3)
	if !n.AtFirst() || n.AtLast() {
		t.Fatalf("fresh navigator: AtFirst=%v AtLast=%v", n.AtFirst(), n.AtLast())
	}
	n.JumpTo(2)
	if n.AtFirst() || !n.AtLast() {
		t.Fatalf("after jump to end: AtFirst=%v AtLast=%v", n.AtFirst(), n.AtLast())
	}

	empty := NewNavigator(0)
	if empty.AtFirst() || empty.AtLast() {
		t.Fatal("empty navigator should report neither edge")
	}
}
