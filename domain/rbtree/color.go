package rbtree

type Color uint8

const (
	Red   Color = 0
	Black Color = 1
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "invalid"
	}
}
