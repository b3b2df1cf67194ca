package scan

import (
	"context"
	"testing"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	ready bool
	image domain.RawImage
	err   error
}

func (d *fakeDevice) Ready() bool { return d.ready }

func (d *fakeDevice) Capture(ctx context.Context) (domain.RawImage, error) {
	if d.err != nil {
		return domain.RawImage{}, d.err
	}
	return d.image, nil
}

type deniedDevice struct {
	fakeDevice
}

func (d *deniedDevice) RequestPermission() PermissionState { return PermissionDenied }

func TestCaptureRequiresPermission(t *testing.T) {
	c := NewCaptureController(&fakeDevice{ready: true})

	_, err := c.Capture(context.Background())
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	assert.Equal(t, PermissionGranted, c.RequestPermission())
	_, err = c.Capture(context.Background())
	assert.NoError(t, err)
}

func TestDeniedPermissionIsTerminal(t *testing.T) {
	c := NewCaptureController(&deniedDevice{fakeDevice{ready: true}})

	assert.Equal(t, PermissionDenied, c.RequestPermission())
	// Re-asking in-app does not flip the answer.
	assert.Equal(t, PermissionDenied, c.RequestPermission())

	_, err := c.Capture(context.Background())
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestCaptureBeforeDeviceReady(t *testing.T) {
	c := NewCaptureController(&fakeDevice{ready: false})
	c.RequestPermission()

	_, err := c.Capture(context.Background())
	assert.ErrorIs(t, err, domain.ErrHardwareNotReady)
}

func TestCaptureHookFiresOncePerCapture(t *testing.T) {
	device := &fakeDevice{ready: true, image: domain.RawImage{Data: []byte("img")}}
	c := NewCaptureController(device)

	var acks int
	c.SetCaptureHook(func() { acks++ })
	c.RequestPermission()

	_, err := c.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, acks)

	device.err = domain.ErrHardwareNotReady
	_, err = c.Capture(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, acks)
}
