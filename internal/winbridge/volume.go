package winbridge

// VolumeDirection selects which media key TapVolumeKey injects.
type VolumeDirection int

const (
	VolumeUp VolumeDirection = iota
	VolumeDown
	VolumeMute
)

// VolumeSteps is the number of key taps that spans the whole 0-100 range.
// Windows moves the volume by 2 points per media-key tap.
const VolumeSteps = 50
