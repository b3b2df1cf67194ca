package scan

import (
	"context"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
)

type PermissionState int

const (
	PermissionUnknown PermissionState = iota
	PermissionGranted
	PermissionDenied
)

type (
	// CaptureDevice is the capability a capture source must provide. The
	// pipeline never talks to hardware or transport directly; it only sees
	// this interface.
	CaptureDevice interface {
		Ready() bool
		Capture(ctx context.Context) (domain.RawImage, error)
	}

	// PermissionAware devices gate capture behind an OS-level permission.
	// Devices that don't implement it are treated as granted.
	PermissionAware interface {
		RequestPermission() PermissionState
	}

	// CaptureController owns the permission state and the capture handshake.
	// Denied permission is terminal and user-facing; it is never silently
	// substituted with data. Capture before the device signals readiness
	// fails rather than blocking.
	CaptureController struct {
		device     CaptureDevice
		permission PermissionState
		onCapture  func()
	}
)

func NewCaptureController(device CaptureDevice) *CaptureController {
	return &CaptureController{device: device}
}

// SetCaptureHook registers the acknowledgment fired once per successful
// capture (haptic/visual feedback on the client surface).
func (c *CaptureController) SetCaptureHook(hook func()) {
	c.onCapture = hook
}

func (c *CaptureController) RequestPermission() PermissionState {
	if c.permission == PermissionDenied {
		// Terminal until the user flips it in OS settings; re-asking in-app
		// does not change the answer.
		return PermissionDenied
	}

	if aware, ok := c.device.(PermissionAware); ok {
		c.permission = aware.RequestPermission()
	} else {
		c.permission = PermissionGranted
	}
	return c.permission
}

func (c *CaptureController) Capture(ctx context.Context) (domain.RawImage, error) {
	if c.permission != PermissionGranted {
		return domain.RawImage{}, domain.ErrPermissionDenied
	}

	if !c.device.Ready() {
		return domain.RawImage{}, domain.ErrHardwareNotReady
	}

	image, err := c.device.Capture(ctx)
	if err != nil {
		return domain.RawImage{}, err
	}

	if c.onCapture != nil {
		c.onCapture()
	}
	return image, nil
}

// uploadDevice adapts a multipart upload into a CaptureDevice: the HTTP
// surface is the camera as far as the pipeline is concerned.
type uploadDevice struct {
	file *multipart.FileHeader
}

func NewUploadDevice(file *multipart.FileHeader) CaptureDevice {
	return &uploadDevice{file: file}
}

func (d *uploadDevice) Ready() bool {
	return d.file != nil && d.file.Size > 0
}

func (d *uploadDevice) Capture(ctx context.Context) (domain.RawImage, error) {
	file, err := d.file.Open()
	if err != nil {
		return domain.RawImage{}, domain.ErrHardwareNotReady
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.RawImage{}, domain.ErrHardwareNotReady
	}

	return domain.RawImage{
		Data:     data,
		MimeType: uploadMimeType(d.file),
		Filename: d.file.Filename,
	}, nil
}

func uploadMimeType(file *multipart.FileHeader) string {
	if mimeType := file.Header.Get("Content-Type"); mimeType != "" {
		return mimeType
	}

	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
