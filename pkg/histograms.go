package evsel

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// H1 is a fixed-binning one-dimensional histogram. Fills are additive and
// safe for concurrent use, merging two histograms with the same binning is
// commutative.
type H1 struct {
	mu        sync.Mutex
	Title     string
	Edges     []float64
	Counts    []float64
	Underflow float64
	Overflow  float64
	Entries   int64
	sum       float64
	sum2      float64
}

type H2 struct {
	mu      sync.Mutex
	Title   string
	XEdges  []float64
	YEdges  []float64
	Counts  []float64 // row-major, len = nx*ny
	Entries int64
}

func newH1(title string, nbins int, min, max float64) *H1 {
	edges := make([]float64, nbins+1)
	floats.Span(edges, min, max)
	return &H1{
		Title:  title,
		Edges:  edges,
		Counts: make([]float64, nbins),
	}
}

func newH2(title string, nx int, xmin, xmax float64, ny int, ymin, ymax float64) *H2 {
	xEdges := make([]float64, nx+1)
	floats.Span(xEdges, xmin, xmax)
	yEdges := make([]float64, ny+1)
	floats.Span(yEdges, ymin, ymax)
	return &H2{
		Title:  title,
		XEdges: xEdges,
		YEdges: yEdges,
		Counts: make([]float64, nx*ny),
	}
}

func (h *H1) Fill(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Entries++
	h.sum += v
	h.sum2 += v * v
	if v < h.Edges[0] {
		h.Underflow++
		return
	}
	if v >= h.Edges[len(h.Edges)-1] {
		h.Overflow++
		return
	}
	idx := floats.Within(h.Edges, v)
	if idx >= 0 {
		h.Counts[idx]++
	}
}

func (h *H1) Mean() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Entries == 0 {
		return 0
	}
	return h.sum / float64(h.Entries)
}

func (h *H1) StdDev() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Entries == 0 {
		return 0
	}
	n := float64(h.Entries)
	mean := h.sum / n
	variance := h.sum2/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Merge adds the contents of other into h. Both must share the binning.
func (h *H1) Merge(other *H1) {
	other.mu.Lock()
	counts := make([]float64, len(other.Counts))
	copy(counts, other.Counts)
	entries := other.Entries
	under, over := other.Underflow, other.Overflow
	sum, sum2 := other.sum, other.sum2
	other.mu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.Counts {
		h.Counts[i] += counts[i]
	}
	h.Entries += entries
	h.Underflow += under
	h.Overflow += over
	h.sum += sum
	h.sum2 += sum2
}

func (h *H2) Fill(x, y float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Entries++
	ix := floats.Within(h.XEdges, x)
	iy := floats.Within(h.YEdges, y)
	if ix < 0 || iy < 0 {
		return
	}
	ny := len(h.YEdges) - 1
	h.Counts[ix*ny+iy]++
}

// HistogramRegistry is a path-keyed metrics sink. Histograms are declared
// once at startup, fills by path afterwards.
type HistogramRegistry struct {
	mu  sync.RWMutex
	h1s map[string]*H1
	h2s map[string]*H2
}

func NewHistogramRegistry() *HistogramRegistry {
	return &HistogramRegistry{
		h1s: make(map[string]*H1),
		h2s: make(map[string]*H2),
	}
}

func (r *HistogramRegistry) Add1D(path string, title string, nbins int, min, max float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.h1s[path] = newH1(title, nbins, min, max)
}

func (r *HistogramRegistry) Add2D(path string, title string, nx int, xmin, xmax float64, ny int, ymin, ymax float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.h2s[path] = newH2(title, nx, xmin, xmax, ny, ymin, ymax)
}

// Add1DVar declares a 1D histogram with explicit (sorted) bin edges.
func (r *HistogramRegistry) Add1DVar(path string, title string, edges []float64) {
	sorted := make([]float64, len(edges))
	copy(sorted, edges)
	sort.Float64s(sorted)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.h1s[path] = &H1{
		Title:  title,
		Edges:  sorted,
		Counts: make([]float64, len(sorted)-1),
	}
}

func (r *HistogramRegistry) Fill(path string, value float64) {
	r.mu.RLock()
	h, ok := r.h1s[path]
	r.mu.RUnlock()
	if !ok {
		if logger != nil {
			logger.Error(fmt.Sprintf("fill on unknown histogram %q", path))
		}
		return
	}
	h.Fill(value)
}

func (r *HistogramRegistry) Fill2(path string, x, y float64) {
	r.mu.RLock()
	h, ok := r.h2s[path]
	r.mu.RUnlock()
	if !ok {
		if logger != nil {
			logger.Error(fmt.Sprintf("fill on unknown histogram %q", path))
		}
		return
	}
	h.Fill(x, y)
}

func (r *HistogramRegistry) Get1D(path string) *H1 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.h1s[path]
}

func (r *HistogramRegistry) Get2D(path string) *H2 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.h2s[path]
}

// Paths1D returns the declared 1D paths in sorted order.
func (r *HistogramRegistry) Paths1D() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.h1s))
	for path := range r.h1s {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (r *HistogramRegistry) Paths2D() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.h2s))
	for path := range r.h2s {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Merge folds another registry with the same layout into this one.
func (r *HistogramRegistry) Merge(other *HistogramRegistry) {
	for path, h := range other.h1s {
		if mine, ok := r.h1s[path]; ok {
			mine.Merge(h)
		}
	}
	for path, h := range other.h2s {
		mine, ok := r.h2s[path]
		if !ok {
			continue
		}
		h.mu.Lock()
		counts := make([]float64, len(h.Counts))
		copy(counts, h.Counts)
		entries := h.Entries
		h.mu.Unlock()
		mine.mu.Lock()
		for i := range mine.Counts {
			mine.Counts[i] += counts[i]
		}
		mine.Entries += entries
		mine.mu.Unlock()
	}
}
