package camera

import (
	"encoding/json"
	"io"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"
	"gonum.org/v1/gonum/mat"
)

// PoseFrame pairs one captured image with its 4x4 camera-to-world matrix
// (row-major homogeneous transform: 3x3 rotation block, translation column,
// [0 0 0 1] bottom row).
type PoseFrame struct {
	RGBPath         string
	WorldFromCamera *mat.Dense
}

// PoseSet is the ordered set of frames from a poses JSON file. Order matches
// the input file and is preserved through the whole pipeline.
type PoseSet struct {
	Frames []*PoseFrame
}

type poseFrameJSON struct {
	RGBPath         string      `json:"rgb_path"`
	WorldFromCamera [][]float64 `json:"world_from_camera"`
}

type poseSetJSON struct {
	Frames []poseFrameJSON `json:"frames"`
}

// ReadPoses takes in a file path to a JSON of captured frames and turns it
// into a PoseSet.
func ReadPoses(jsonPath string) (*PoseSet, error) {
	//nolint:gosec
	jsonFile, err := os.Open(jsonPath)
	if err != nil {
		return nil, errors.Wrap(err, "error opening poses JSON file")
	}
	defer utils.UncheckedErrorFunc(jsonFile.Close)
	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, errors.Wrap(err, "error reading poses JSON data")
	}
	raw := &poseSetJSON{}
	if err := json.Unmarshal(byteValue, raw); err != nil {
		return nil, errors.Wrap(err, "error parsing poses JSON string")
	}
	if len(raw.Frames) == 0 {
		return nil, errors.New("poses JSON has no frames")
	}
	set := &PoseSet{Frames: make([]*PoseFrame, 0, len(raw.Frames))}
	for i, frame := range raw.Frames {
		pose, err := denseFromRows(frame.WorldFromCamera)
		if err != nil {
			return nil, errors.Wrapf(err, "frame %d (%s)", i, frame.RGBPath)
		}
		set.Frames = append(set.Frames, &PoseFrame{
			RGBPath:         frame.RGBPath,
			WorldFromCamera: pose,
		})
	}
	return set, nil
}

func denseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) != 4 {
		return nil, errors.Errorf("world_from_camera must have 4 rows, has %d", len(rows))
	}
	data := make([]float64, 0, 16)
	for i, row := range rows {
		if len(row) != 4 {
			return nil, errors.Errorf("world_from_camera row %d must have 4 columns, has %d", i, len(row))
		}
		data = append(data, row...)
	}
	return mat.NewDense(4, 4, data), nil
}

// Translation returns the pose's translation component, rows 0-2 of column 3.
func (pf *PoseFrame) Translation() r3.Vector {
	m := pf.WorldFromCamera
	return r3.Vector{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)}
}

// SetTranslation writes t back into the pose's translation column.
func (pf *PoseFrame) SetTranslation(t r3.Vector) {
	m := pf.WorldFromCamera
	m.Set(0, 3, t.X)
	m.Set(1, 3, t.Y)
	m.Set(2, 3, t.Z)
}

// Clone returns a deep copy of the frame. Pipeline stages transform copies so
// a loaded PoseSet is never mutated in place.
func (pf *PoseFrame) Clone() *PoseFrame {
	return &PoseFrame{
		RGBPath:         pf.RGBPath,
		WorldFromCamera: mat.DenseCopyOf(pf.WorldFromCamera),
	}
}

// RotationDet returns the determinant of the 3x3 rotation block. A proper
// rotation has determinant +1; anything else means a mirrored or degenerate
// orientation in the source data.
func (pf *PoseFrame) RotationDet() float64 {
	sub := mat.DenseCopyOf(pf.WorldFromCamera.Slice(0, 3, 0, 3))
	return mat.Det(sub)
}
