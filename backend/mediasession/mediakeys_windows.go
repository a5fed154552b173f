//go:build windows

package mediasession

import "golang.org/x/sys/windows"

const (
	vkVolumeMute    = 0xAD
	vkVolumeDown    = 0xAE
	vkVolumeUp      = 0xAF
	vkMediaNext     = 0xB0
	vkMediaPrev     = 0xB1
	vkMediaPlayStop = 0xB3

	keyEventFKeyUp = 0x0002
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	procKeybdEvent = user32.NewProc("keybd_event")
)

// SystemKeys synthesizes global media key presses, which the OS routes to
// whichever app owns the current media session.
type SystemKeys struct{}

func NewSystemKeys() (*SystemKeys, error) {
	if err := procKeybdEvent.Find(); err != nil {
		return nil, err
	}
	return &SystemKeys{}, nil
}

func (*SystemKeys) Send(k MediaKey) {
	vk, ok := virtualKey(k)
	if !ok {
		return
	}
	// keybd_event returns nothing useful
	procKeybdEvent.Call(vk, 0, 0, 0)
	procKeybdEvent.Call(vk, 0, keyEventFKeyUp, 0)
}

func virtualKey(k MediaKey) (uintptr, bool) {
	switch k {
	case Next:
		return vkMediaNext, true
	case Previous:
		return vkMediaPrev, true
	case PlayPause:
		return vkMediaPlayStop, true
	case VolumeUp:
		return vkVolumeUp, true
	case VolumeDown:
		return vkVolumeDown, true
	case Mute:
		return vkVolumeMute, true
	}
	return 0, false
}
