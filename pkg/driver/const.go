package driver

// DeviceType represents human readable device type. DeviceType
// can be useful to filter the drivers too.
type DeviceType string

const (
	// Camera represents V4L2 capture devices
	Camera DeviceType = "camera"
	// File represents raw frames stored on disk
	File DeviceType = "file"
	// Test represents synthetic sources
	Test DeviceType = "test"
)
