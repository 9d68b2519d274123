// Package camera contains the capture dataset types the converter consumes:
// the shared pinhole intrinsics and the per-frame camera-to-world poses.
package camera

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Intrinsics holds the pinhole parameters shared by every frame of a capture.
// The rig emits no lens distortion, so none is modeled here.
type Intrinsics struct {
	Fx     float64 `json:"fx"`
	Fy     float64 `json:"fy"`
	Cx     float64 `json:"cx"`
	Cy     float64 `json:"cy"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

// CheckValid checks if the fields for Intrinsics have valid inputs.
func (params *Intrinsics) CheckValid() error {
	if params == nil {
		return errors.New("intrinsics do not exist")
	}
	if params.Width == 0 || params.Height == 0 {
		return errors.Errorf("invalid size (%#v, %#v)", params.Width, params.Height)
	}
	if params.Fx <= 0 {
		return errors.Errorf("invalid focal length Fx = %#v", params.Fx)
	}
	if params.Fy <= 0 {
		return errors.Errorf("invalid focal length Fy = %#v", params.Fy)
	}
	if params.Cx < 0 {
		return errors.Errorf("invalid principal X point Cx = %#v", params.Cx)
	}
	if params.Cy < 0 {
		return errors.Errorf("invalid principal Y point Cy = %#v", params.Cy)
	}
	return nil
}

// ReadIntrinsics takes in a file path to a JSON and turns it into Intrinsics.
func ReadIntrinsics(jsonPath string) (*Intrinsics, error) {
	//nolint:gosec
	jsonFile, err := os.Open(jsonPath)
	if err != nil {
		return nil, errors.Wrap(err, "error opening intrinsics JSON file")
	}
	defer utils.UncheckedErrorFunc(jsonFile.Close)
	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, errors.Wrap(err, "error reading intrinsics JSON data")
	}
	intrinsics := &Intrinsics{}
	if err := json.Unmarshal(byteValue, intrinsics); err != nil {
		return nil, errors.Wrap(err, "error parsing intrinsics JSON string")
	}
	return intrinsics, nil
}
