//go:build !cgo

package hal

import "fmt"

// RunWindow fails like a window that could not be created: ebiten needs cgo.
func RunWindow(_ EbitenConfig, _ Logger, _ func(HAL) Loop) error {
	return fmt.Errorf("%w: %w", ErrWindowCreate, ErrNoCgo)
}
