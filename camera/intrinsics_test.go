package camera

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestIntrinsicsCheckValid(t *testing.T) {
	good := &Intrinsics{Fx: 900.5, Fy: 900.5, Cx: 648.0, Cy: 367.2, Width: 1280, Height: 720}
	test.That(t, good.CheckValid(), test.ShouldBeNil)

	var nilParams *Intrinsics
	test.That(t, nilParams.CheckValid(), test.ShouldNotBeNil)

	noSize := &Intrinsics{Fx: 900.5, Fy: 900.5, Cx: 648.0, Cy: 367.2}
	err := noSize.CheckValid()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid size")

	badFx := &Intrinsics{Fy: 900.5, Cx: 648.0, Cy: 367.2, Width: 1280, Height: 720}
	err = badFx.CheckValid()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "focal length Fx")

	badCy := &Intrinsics{Fx: 900.5, Fy: 900.5, Cx: 648.0, Cy: -1, Width: 1280, Height: 720}
	err = badCy.CheckValid()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "principal Y point")
}

func TestReadIntrinsics(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "intrinsics_rgb.json")
	doc := `{"fx": 900.5, "fy": 901.25, "cx": 640.0, "cy": 360.0, "width": 1280, "height": 720}`
	test.That(t, os.WriteFile(jsonPath, []byte(doc), 0o644), test.ShouldBeNil)

	intrinsics, err := ReadIntrinsics(jsonPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, intrinsics.Fx, test.ShouldEqual, 900.5)
	test.That(t, intrinsics.Fy, test.ShouldEqual, 901.25)
	test.That(t, intrinsics.Cx, test.ShouldEqual, 640.0)
	test.That(t, intrinsics.Cy, test.ShouldEqual, 360.0)
	test.That(t, intrinsics.Width, test.ShouldEqual, 1280)
	test.That(t, intrinsics.Height, test.ShouldEqual, 720)
	test.That(t, intrinsics.CheckValid(), test.ShouldBeNil)
}

func TestReadIntrinsicsFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadIntrinsics(filepath.Join(dir, "no_such_file.json"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "error opening intrinsics JSON")

	badPath := filepath.Join(dir, "bad.json")
	test.That(t, os.WriteFile(badPath, []byte("{not json"), 0o644), test.ShouldBeNil)
	_, err = ReadIntrinsics(badPath)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "error parsing intrinsics JSON")
}
