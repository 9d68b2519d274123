// Package scene computes and applies the normalization that recenters and
// rescales a capture so its cameras fit the unit-sphere neighborhood the
// reconstruction pipeline expects.
package scene

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/dsilvavinicius/neuralangelo/camera"
)

// NormalizedMaxDist is the distance from the origin at which the furthest
// camera sits after normalization, leaving the subject inside the unit
// sphere.
const NormalizedMaxDist = 2.0

// Normalization holds the recentering and rescaling parameters derived from
// a full pose set. Read-only once computed.
type Normalization struct {
	Center  r3.Vector
	Scale   float64
	MaxDist float64
}

// ComputeNormalization derives the scene center and scale factor from the
// camera translations of the full pose set. The center is the mean camera
// position; the scale places the furthest camera at NormalizedMaxDist from
// the origin.
func ComputeNormalization(set *camera.PoseSet) (*Normalization, error) {
	if set == nil || len(set.Frames) == 0 {
		return nil, errors.New("cannot normalize an empty pose set")
	}
	var sum r3.Vector
	for _, frame := range set.Frames {
		sum = sum.Add(frame.Translation())
	}
	center := sum.Mul(1.0 / float64(len(set.Frames)))

	maxDist := 0.0
	for _, frame := range set.Frames {
		if d := frame.Translation().Sub(center).Norm(); d > maxDist {
			maxDist = d
		}
	}
	if maxDist == 0 {
		return nil, errors.New("all cameras coincide at one point, scale factor is undefined")
	}
	return &Normalization{
		Center:  center,
		Scale:   NormalizedMaxDist / maxDist,
		MaxDist: maxDist,
	}, nil
}

// ApplyTo returns a copy of frame with its translation recentered and
// rescaled. The rotation block and bottom row pass through untouched.
func (n *Normalization) ApplyTo(frame *camera.PoseFrame) *camera.PoseFrame {
	out := frame.Clone()
	out.SetTranslation(frame.Translation().Sub(n.Center).Mul(n.Scale))
	return out
}
