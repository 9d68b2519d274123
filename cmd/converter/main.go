// Package main converts a captured camera-pose dataset into the
// transforms.json manifest the reconstruction pipeline reads.
package main

import (
	"context"

	"github.com/edaniels/golog"
	"go.viam.com/utils"

	"github.com/dsilvavinicius/neuralangelo/camera"
	"github.com/dsilvavinicius/neuralangelo/nerf"
	"github.com/dsilvavinicius/neuralangelo/scene"
)

const (
	inputPosesPath      = "/data/torso/poses.json"
	inputIntrinsicsPath = "/data/torso/intrinsics_rgb.json"
	outputManifestPath  = "/data/torso/transforms.json"
)

var logger = golog.NewDevelopmentLogger("converter")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	return convert(inputPosesPath, inputIntrinsicsPath, outputManifestPath, logger)
}

// convert runs the whole pipeline: load both inputs, derive the scene
// normalization, rewrite every pose, and write the manifest. Any failure
// propagates to the caller; there is no retry and no partial-output cleanup.
func convert(posesPath, intrinsicsPath, outPath string, logger golog.Logger) error {
	intrinsics, err := camera.ReadIntrinsics(intrinsicsPath)
	if err != nil {
		return err
	}
	if err := intrinsics.CheckValid(); err != nil {
		return err
	}
	poses, err := camera.ReadPoses(posesPath)
	if err != nil {
		return err
	}
	logger.Infof("processing %d frames", len(poses.Frames))

	norm, err := scene.ComputeNormalization(poses)
	if err != nil {
		return err
	}
	logger.Infof("auto-centering at %v", norm.Center)
	logger.Infof("auto-scaling by %v (max camera dist was %.2f)", norm.Scale, norm.MaxDist)

	manifest := nerf.NewManifest(intrinsics)
	for i, frame := range poses.Frames {
		if det := frame.RotationDet(); det <= 0 {
			logger.Warnf("frame %d (%s) rotation block has determinant %v, passing through as-is", i, frame.RGBPath, det)
		}
		normalized := norm.ApplyTo(frame)
		manifest.AddFrame(normalized.RGBPath, normalized.WorldFromCamera)
	}

	if err := manifest.WriteFile(outPath); err != nil {
		return err
	}
	logger.Infof("saved %s", outPath)
	return nil
}
