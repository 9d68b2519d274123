// Package nerf models the transforms.json manifest consumed by the
// neural-surface-reconstruction pipeline.
package nerf

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"

	"github.com/dsilvavinicius/neuralangelo/camera"
)

// Frame is one entry of the manifest's frames list: an image path and its
// normalized camera-to-world matrix as nested row lists.
type Frame struct {
	FilePath        string      `json:"file_path"`
	TransformMatrix [][]float64 `json:"transform_matrix"`
}

// Manifest is the full output document. Intrinsics are flattened to the top
// level next to the fixed camera-model and scene-bounds metadata.
type Manifest struct {
	FlX          float64   `json:"fl_x"`
	FlY          float64   `json:"fl_y"`
	Cx           float64   `json:"cx"`
	Cy           float64   `json:"cy"`
	W            int       `json:"w"`
	H            int       `json:"h"`
	SkX          float64   `json:"sk_x"`
	SkY          float64   `json:"sk_y"`
	K1           float64   `json:"k1"`
	K2           float64   `json:"k2"`
	P1           float64   `json:"p1"`
	P2           float64   `json:"p2"`
	IsFisheye    bool      `json:"is_fisheye"`
	SphereCenter []float64 `json:"sphere_center"`
	SphereRadius float64   `json:"sphere_radius"`
	AABBScale    int       `json:"aabb_scale"`
	Frames       []*Frame  `json:"frames"`
}

// NewManifest flattens the capture intrinsics into a manifest with the fixed
// camera-model metadata: zero skew, zero distortion, not fisheye, and a unit
// sphere at the origin as the scene bounds.
func NewManifest(intrinsics *camera.Intrinsics) *Manifest {
	return &Manifest{
		FlX:          intrinsics.Fx,
		FlY:          intrinsics.Fy,
		Cx:           intrinsics.Cx,
		Cy:           intrinsics.Cy,
		W:            intrinsics.Width,
		H:            intrinsics.Height,
		SkX:          0.0,
		SkY:          0.0,
		K1:           0.0,
		K2:           0.0,
		P1:           0.0,
		P2:           0.0,
		IsFisheye:    false,
		SphereCenter: []float64{0.0, 0.0, 0.0},
		SphereRadius: 1.0,
		AABBScale:    1,
		Frames:       []*Frame{},
	}
}

// AddFrame appends a frame record. Frames serialize in the order they were
// added.
func (m *Manifest) AddFrame(filePath string, pose *mat.Dense) {
	rows := make([][]float64, 4)
	for i := range rows {
		row := make([]float64, 4)
		mat.Row(row, i, pose)
		rows[i] = row
	}
	m.Frames = append(m.Frames, &Frame{FilePath: filePath, TransformMatrix: rows})
}

// WriteFile serializes the manifest, pretty-printed, to path. The document
// is marshaled in full before the file is created, so a marshal failure
// leaves no partial output behind.
func (m *Manifest) WriteFile(path string) (err error) {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return errors.Wrap(err, "error marshaling manifest")
	}
	//nolint:gosec
	outFile, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "error creating manifest file")
	}
	defer func() {
		err = multierr.Combine(err, outFile.Close())
	}()
	if _, err := outFile.Write(data); err != nil {
		return errors.Wrap(err, "error writing manifest file")
	}
	return nil
}
