package papercraft

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bucket is the direction class a face normal falls into.
type Bucket int

const (
	BucketPosZ Bucket = iota
	BucketNegZ
	BucketPosX
	BucketNegX
	BucketPosY
	BucketNegY
	BucketOther

	numBuckets
)

// dominantThreshold is the minimum absolute component for an axis bucket.
const dominantThreshold = 0.7

// numberStride separates successive faces of one bucket: 1, 11, 21...
const numberStride = 10

var bucketNames = [numBuckets]string{"+Z", "-Z", "+X", "-X", "+Y", "-Y", "other"}

func (b Bucket) String() string {
	if b < 0 || b >= numBuckets {
		return "invalid"
	}
	return bucketNames[b]
}

// Base is the face number of the bucket's first face.
func (b Bucket) Base() int {
	return int(b) + 1
}

// BucketOf classifies a normal. nil and near-zero normals are BucketOther.
// The Z axis is checked first, then X, then Y.
func BucketOf(normal *mgl64.Vec3) Bucket {
	if normal == nil {
		return BucketOther
	}
	n, ok := unit(*normal)
	if !ok {
		return BucketOther
	}

	ax, ay, az := math.Abs(n.X()), math.Abs(n.Y()), math.Abs(n.Z())
	switch {
	case az >= dominantThreshold && az >= ax && az >= ay:
		if n.Z() > 0 {
			return BucketPosZ
		}
		return BucketNegZ
	case ax >= dominantThreshold && ax >= ay && ax >= az:
		if n.X() > 0 {
			return BucketPosX
		}
		return BucketNegX
	case ay >= dominantThreshold && ay >= ax && ay >= az:
		if n.Y() > 0 {
			return BucketPosY
		}
		return BucketNegY
	}
	return BucketOther
}

// FaceNumberer hands out face numbers for one solid. Create one per solid, or
// call Reset before reusing it.
type FaceNumberer struct {
	counters [numBuckets]int
}

func NewFaceNumberer() *FaceNumberer {
	return &FaceNumberer{}
}

// Reset clears the per-bucket occurrence counters.
func (n *FaceNumberer) Reset() {
	n.counters = [numBuckets]int{}
}

// Assign returns the next face number for a face with the given normal:
// base(bucket) + 10·(occurrence − 1).
func (n *FaceNumberer) Assign(normal *mgl64.Vec3) int {
	b := BucketOf(normal)
	n.counters[b]++
	return b.Base() + numberStride*(n.counters[b]-1)
}

// Count returns how many faces have been numbered in bucket b.
func (n *FaceNumberer) Count(b Bucket) int {
	if b < 0 || b >= numBuckets {
		return 0
	}
	return n.counters[b]
}

// NumberFaces returns copies of records with FaceNumber assigned in slice
// order by a fresh numberer.
func NumberFaces(records []FaceRecord) []FaceRecord {
	numberer := NewFaceNumberer()
	out := make([]FaceRecord, len(records))
	for i := range records {
		out[i] = records[i].Copy()
		out[i].FaceNumber = numberer.Assign(out[i].OutwardNormal())
	}
	return out
}
