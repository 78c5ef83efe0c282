package filter

import (
	"math"
	"sync"
)

// GaussianKernel generates a normalized 1D Gaussian kernel of length
// 2*radius+1. The standard deviation is sqrt((radius+1)^2 / 3), which keeps
// the outermost taps visible for small radii.
//
// For radius <= 0, returns the identity kernel [1.0].
func GaussianKernel(radius int) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	vert := float64(radius) + 1
	sigma := math.Sqrt(vert * vert / 3)
	twoSigmaSq := 2 * sigma * sigma

	size := radius*2 + 1
	kernel := make([]float32, size)
	sum := float64(0)
	for i := 0; i < size; i++ {
		x := float64(i - radius)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}
	normalize(kernel, sum)
	return kernel
}

// CenterWeightedKernel generates a normalized box kernel of length
// 2*radius+1 whose center tap has weight strength and all others weight 1.
func CenterWeightedKernel(radius int, strength float64) []float32 {
	radius = max(radius, 0)
	size := radius*2 + 1
	kernel := make([]float32, size)
	sum := float64(0)
	for i := range kernel {
		w := 1.0
		if i == radius {
			w = strength
		}
		kernel[i] = float32(w)
		sum += w
	}
	normalize(kernel, sum)
	return kernel
}

// CircleKernel returns a (2r+1)x(2r+1) structuring element, row-major, where
// cells within distance r of the center are true.
func CircleKernel(radius int) Kernel2D {
	radius = max(radius, 0)
	size := radius*2 + 1
	k := Kernel2D{Width: size, Height: size, Cells: make([]bool, size*size)}
	r := float64(radius)
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			k.Cells[(y+radius)*size+x+radius] = math.Sqrt(float64(x*x+y*y)) <= r
		}
	}
	return k
}

// Kernel2D is a binary 2D structuring element for morphology.
type Kernel2D struct {
	Width  int
	Height int
	Cells  []bool
}

func normalize(kernel []float32, sum float64) {
	if sum == 0 {
		return
	}
	inv := float32(1.0 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
}

// kernelCache caches Gaussian kernels by radius.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int][]float32
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[int][]float32),
		maxLen: maxLen,
	}
}

func (c *kernelCache) get(radius int) []float32 {
	c.mu.RLock()
	if kernel, ok := c.cache[radius]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := GaussianKernel(radius)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		clear(c.cache)
	}
	c.cache[radius] = kernel
	c.mu.Unlock()

	return kernel
}

// CachedGaussianKernel returns a shared Gaussian kernel for radius.
// Callers must not modify the returned slice.
func CachedGaussianKernel(radius int) []float32 {
	return defaultKernelCache.get(radius)
}
