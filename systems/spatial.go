package systems

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// BiotPoint is one indexed biot position. Idx is the slot index into
// this tick's snapshot and is only meaningful until the index is
// rebuilt; nothing persists across ticks.
type BiotPoint struct {
	X, Y float64
	Idx  int
}

// Compare satisfies kdtree.Comparable.
func (p BiotPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(BiotPoint)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	default:
		panic("systems: illegal dimension")
	}
}

// Dims returns the number of dimensions indexed.
func (p BiotPoint) Dims() int { return 2 }

// Distance returns the squared Euclidean distance. No square root is
// taken anywhere in the neighbor queries.
func (p BiotPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(BiotPoint)
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// biotPoints implements kdtree.Interface for bulk loading.
type biotPoints []BiotPoint

func (p biotPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p biotPoints) Len() int                              { return len(p) }
func (p biotPoints) Pivot(d kdtree.Dim) int                { return plane{biotPoints: p, Dim: d}.Pivot() }
func (p biotPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane orders biotPoints along a dimension for tree construction.
type plane struct {
	kdtree.Dim
	biotPoints
}

func (p plane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.biotPoints[i].X < p.biotPoints[j].X
	case 1:
		return p.biotPoints[i].Y < p.biotPoints[j].Y
	default:
		panic("systems: illegal dimension")
	}
}

func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.biotPoints = p.biotPoints[start:end]
	return p
}

func (p plane) Swap(i, j int) {
	p.biotPoints[i], p.biotPoints[j] = p.biotPoints[j], p.biotPoints[i]
}

// Neighbor is one spatial query result with its squared distance.
type Neighbor struct {
	Point  BiotPoint
	DistSq float64
}

// Index is the per-tick spatial index over biot positions. It is bulk
// built from a snapshot of pre-step positions and never mutated; the
// next tick builds a fresh one.
type Index struct {
	tree *kdtree.Tree
	n    int
}

// BuildIndex bulk-loads a kd-tree over the given points. The input
// slice is copied; construction reorders the copy.
func BuildIndex(points []BiotPoint) *Index {
	data := make(biotPoints, len(points))
	copy(data, points)
	return &Index{
		tree: kdtree.New(data, false),
		n:    len(data),
	}
}

// Len returns the number of indexed points.
func (ix *Index) Len() int { return ix.n }

// Nearest returns up to k nearest points to (x, y) in ascending order
// of squared distance. A biot querying from its own position sees
// itself first at distance zero.
func (ix *Index) Nearest(x, y float64, k int) []Neighbor {
	if ix.n == 0 || k <= 0 {
		return nil
	}
	keep := kdtree.NewNKeeper(k)
	ix.tree.NearestSet(keep, BiotPoint{X: x, Y: y, Idx: -1})
	return collect(keep.Heap)
}

// Within returns all points with squared distance to (x, y) at most
// distSq, in ascending order of squared distance.
func (ix *Index) Within(x, y, distSq float64) []Neighbor {
	if ix.n == 0 {
		return nil
	}
	keep := kdtree.NewDistKeeper(distSq)
	ix.tree.NearestSet(keep, BiotPoint{X: x, Y: y, Idx: -1})
	return collect(keep.Heap)
}

// collect turns a keeper heap into ascending Neighbor results,
// dropping the keeper's sentinel entry.
func collect(heap []kdtree.ComparableDist) []Neighbor {
	out := make([]Neighbor, 0, len(heap))
	for _, cd := range heap {
		if cd.Comparable == nil {
			continue
		}
		out = append(out, Neighbor{Point: cd.Comparable.(BiotPoint), DistSq: cd.Dist})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistSq < out[j].DistSq })
	return out
}
