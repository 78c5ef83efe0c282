// Package filter provides the image-geometry primitives used by glyph
// effects:
//   - separable 1D convolution (Gaussian and box kernels)
//   - morphological maximum/minimum with a 2D structuring kernel
//   - signed euclidean distance transform
//
// All filters take and return *image.ImageBuf and never modify their input.
package filter
