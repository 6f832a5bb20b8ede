// Package colors contains functions to quickly generate acg.Color instances by name (i.e. "White()", "Blue()", "Green()", etc).
package colors

import acg "github.com/asvorded/acg-labs-sub000"

func Transparent() acg.Color {
	return acg.NewColor(0, 0, 0, 0)
}

func White() acg.Color {
	return acg.NewColor(1, 1, 1, 1)
}

func Black() acg.Color {
	return acg.NewColor(0, 0, 0, 1)
}

func Gray() acg.Color {
	return acg.NewColor(0.5, 0.5, 0.5, 1)
}

func LightGray() acg.Color {
	return acg.NewColor(0.8, 0.8, 0.8, 1)
}

func DarkGray() acg.Color {
	return acg.NewColor(0.2, 0.2, 0.2, 1)
}

func Red() acg.Color {
	return acg.NewColor(1, 0, 0, 1)
}

func Green() acg.Color {
	return acg.NewColor(0, 1, 0, 1)
}

func Blue() acg.Color {
	return acg.NewColor(0, 0, 1, 1)
}

func Yellow() acg.Color {
	return acg.NewColor(1, 1, 0, 1)
}

// SkyBlue is the default clear color of the example programs.
func SkyBlue() acg.Color {
	return acg.NewColor(0.39, 0.58, 0.93, 1)
}
