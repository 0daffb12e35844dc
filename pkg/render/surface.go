package render

import "errors"

// ErrBufferLocked is returned when a pixel buffer is locked while a previous
// lock is still held.
var ErrBufferLocked = errors.New("pixel buffer already locked")

// PixelBuffer is a destination that exposes direct RGB24 pixel access.
// Lock returns the writable region and its row pitch in bytes; three bytes
// per pixel, R then G then B. The region must not be read or displayed until
// Unlock is called.
type PixelBuffer interface {
	Size() (width, height int)
	Lock() (pixels []byte, pitch int, err error)
	Unlock()
}

// LineSurface is a destination that only offers drawing primitives.
type LineSurface interface {
	Size() (width, height int)
	DrawLine(x0, y0, x1, y1 int, c Color)
	DrawRectOutline(x, y, w, h int, c Color)
}

// Surface is a destination usable by every fill variant.
type Surface interface {
	PixelBuffer
	LineSurface
}
