package quad

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad/gpucore"
)

// uploadStaged moves size bytes into a device resource through a transfer
// buffer. fill writes the payload into mapped staging memory; record
// issues the copy from staging to the destination inside a copy pass.
//
// The staging buffer is released on every path, after submission on
// success. The upload is not waited on: queue order sequences it before
// later rendering.
func uploadStaged(
	dev gpucore.Device,
	label string,
	size uint32,
	fill func(dst []byte),
	record func(pass gpucore.CopyPass, tb gpucore.TransferBuffer),
) error {
	tb, err := dev.CreateTransferBuffer(&gpucore.TransferBufferDesc{
		Label: label,
		Usage: gpucore.TransferUsageUpload,
		Size:  size,
	})
	if err != nil {
		return fmt.Errorf("create transfer buffer: %w", err)
	}
	defer dev.ReleaseTransferBuffer(tb)

	dst, err := dev.MapTransferBuffer(tb, false)
	if err != nil {
		return fmt.Errorf("map transfer buffer: %w", err)
	}
	fill(dst[:size])
	dev.UnmapTransferBuffer(tb)

	cmd, err := dev.AcquireCommandBuffer()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquireCommandBuffer, err)
	}
	pass, err := cmd.BeginCopyPass()
	if err != nil {
		cmd.Cancel()
		return fmt.Errorf("begin copy pass: %w", err)
	}
	record(pass, tb)
	pass.End()

	if err := cmd.Submit(); err != nil {
		return fmt.Errorf("submit upload: %w", err)
	}
	return nil
}

// UploadGeometry creates the static vertex buffer and fills it with vertices.
func UploadGeometry(dev gpucore.Device, vertices []Vertex) (gpucore.Buffer, error) {
	data := VertexBytes(vertices)
	size := uint32(len(data))

	buf, err := dev.CreateBuffer(&gpucore.BufferDesc{
		Label: "Static geometry",
		Usage: gputypes.BufferUsageVertex,
		Size:  size,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	err = uploadStaged(dev, "Static geometry staging", size,
		func(dst []byte) { copy(dst, data) },
		func(pass gpucore.CopyPass, tb gpucore.TransferBuffer) {
			pass.UploadToBuffer(
				gpucore.TransferBufferLocation{TransferBuffer: tb},
				gpucore.BufferRegion{Buffer: buf, Size: size},
				false,
			)
		})
	if err != nil {
		dev.ReleaseBuffer(buf)
		return nil, fmt.Errorf("upload geometry: %w", err)
	}
	return buf, nil
}
