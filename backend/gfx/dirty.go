package gfx

import "image"

// maxDirtyAge is the highest age an un-repainted region may reach; the
// aging round that takes it beyond this drops it.
const maxDirtyAge = 8

// DirtyRegion is an axis-aligned rectangle over the output buffer with
// an age counter.
type DirtyRegion struct {
	Rect image.Rectangle
	Age  int
}

// DirtyList collects regions awaiting repaint. Not safe for concurrent
// use; each render loop owns one list.
type DirtyList struct {
	regions []DirtyRegion
}

// Mark adds a rectangle to the dirty list, merging it with an existing
// overlapping region.
func (dl *DirtyList) Mark(r image.Rectangle) {
	if r.Empty() {
		return
	}
	for i := range dl.regions {
		if dl.regions[i].Rect.Overlaps(r) {
			dl.regions[i].Rect = dl.regions[i].Rect.Union(r)
			dl.regions[i].Age = 0
			return
		}
	}
	dl.regions = append(dl.regions, DirtyRegion{Rect: r})
}

// Regions returns the current dirty rectangles.
func (dl *DirtyList) Regions() []image.Rectangle {
	rects := make([]image.Rectangle, len(dl.regions))
	for i, region := range dl.regions {
		rects[i] = region.Rect
	}
	return rects
}

// AgeAndDrop increments every region's age and drops regions older
// than the threshold. Called once per frame.
func (dl *DirtyList) AgeAndDrop() {
	kept := dl.regions[:0]
	for _, region := range dl.regions {
		region.Age++
		if region.Age <= maxDirtyAge {
			kept = append(kept, region)
		}
	}
	dl.regions = kept
}

// Clear empties the list after a completed repaint.
func (dl *DirtyList) Clear() {
	dl.regions = dl.regions[:0]
}
