//go:build !windows

package overlay

// applyNativeOpacity is a no-op; the translucent background carries the opacity.
func (overlay *Window) applyNativeOpacity(alpha uint8) {}
