package geom

import (
	"errors"
	"fmt"
)

// ErrInvalidFaceSet is returned when a face set has no faces, no indices or no points.
var ErrInvalidFaceSet = errors.New("geom: invalid face set")

// FaceRangeError reports a face whose corner range runs past the index array.
// Faces before it have been triangulated, the rest are dropped.
type FaceRangeError struct {
	Face       int
	Begin, End int
	NumIndices int
	Count      int32
}

func (e *FaceRangeError) Error() string {
	return fmt.Sprintf("geom: face %d has bad range [%d, %d) (count = %d, numIndices = %d)",
		e.Face, e.Begin, e.End, e.Count, e.NumIndices)
}

// FaceIndexError reports a face skipped because a corner addresses a missing point.
type FaceIndexError struct {
	Face        int
	IndexIndex  int
	VertexIndex int32
	NumPoints   int
}

func (e *FaceIndexError) Error() string {
	return fmt.Sprintf("geom: face %d has bad index (indexIndex = %d, vertexIndex = %d, numPoints = %d)",
		e.Face, e.IndexIndex, e.VertexIndex, e.NumPoints)
}

// FaceSet is the result of BuildFaceSet.
type FaceSet struct {
	Faces   []uint32 // 3 point indices per triangle
	Skipped []*FaceIndexError
}

func (fs *FaceSet) NumTriangles() int {
	return len(fs.Faces) / 3
}

// BuildFaceSet fan-triangulates polygons given as corner indices and per-face
// corner counts. Triangles of face f are (c0, c1, c2), (c0, c2, c3), ...
//
// Faces with a bad point index are skipped. A face whose range overflows the
// index array stops processing; the triangles built so far are returned with
// a *FaceRangeError.
func BuildFaceSet(numPoints int, indices, counts []int32) (*FaceSet, error) {
	if len(counts) < 1 || len(indices) < 1 || numPoints < 1 {
		return nil, fmt.Errorf("%w: numFaces = %d, numIndices = %d, numPoints = %d",
			ErrInvalidFaceSet, len(counts), len(indices), numPoints)
	}

	fs := &FaceSet{}
	end := 0
	for face, count := range counts {
		begin := end
		end = begin + int(count)
		if end > len(indices) || end < begin {
			return fs, &FaceRangeError{Face: face, Begin: begin, End: end, NumIndices: len(indices), Count: count}
		}

		corners := indices[begin:end]
		if err := checkCorners(face, begin, corners, numPoints); err != nil {
			fs.Skipped = append(fs.Skipped, err)
			continue
		}
		for c := 2; c < len(corners); c++ {
			fs.Faces = append(fs.Faces, uint32(corners[0]), uint32(corners[c-1]), uint32(corners[c]))
		}
	}
	return fs, nil
}

func checkCorners(face, begin int, corners []int32, numPoints int) *FaceIndexError {
	for i, v := range corners {
		if v < 0 || int(v) >= numPoints {
			return &FaceIndexError{Face: face, IndexIndex: begin + i, VertexIndex: v, NumPoints: numPoints}
		}
	}
	return nil
}
