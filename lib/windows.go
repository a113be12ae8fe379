// +build windows

package spanpaperlib

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows/registry"
)

// DesktopWallpaper does not extend IDispatch so this needs to be done manually
type IDesktopWallpaperVtbl struct {
	QueryInterface            uintptr
	AddRef                    uintptr
	Release                   uintptr
	SetWallpaper              uintptr
	GetWallpaper              uintptr
	GetMonitorDevicePathAt    uintptr
	GetMonitorDevicePathCount uintptr
	GetMonitorRECT            uintptr
	SetBackgroundColor        uintptr
	GetBackgroundColor        uintptr
	SetPosition               uintptr
	GetPosition               uintptr
	SetSlideshow              uintptr
	GetSlideshow              uintptr
	SetSlideshowOptions       uintptr
	GetSlideshowOptions       uintptr
	AdvanceSlideshow          uintptr
	GetStatus                 uintptr
	Enable                    uintptr
}

// Pulled from headers
const CLSID = "{C2CF3110-460E-4fc1-B9D0-8A1C0C9CC4BD}"
const IID = "{B92B56A9-8B55-4E14-9A89-0199BBB6F93B}"

// DWPOS_SPAN stretches a single wallpaper across every monitor, matching
// the composited output's virtual desktop bounding box.
const DWPOS_SPAN = uintptr(5)

var sysProcAttr = &syscall.SysProcAttr{HideWindow: true}

// SetWallpaper installs an already composited file as the spanned
// wallpaper for all monitors.
func SetWallpaper(path AbsolutePath) error {
	err := setRegistryKeys()
	if err != nil {
		return err
	}

	err = ole.CoInitialize(0)
	if err != nil {
		return err
	}
	defer ole.CoUninitialize()

	desktop, err := ole.CreateInstance(
		ole.NewGUID(CLSID),
		ole.NewGUID(IID))
	if err != nil {
		return err
	}
	defer desktop.Release()

	vtable := (*IDesktopWallpaperVtbl)(unsafe.Pointer(desktop.RawVTable))

	hr, _, _ := syscall.Syscall(
		vtable.SetPosition,
		2,
		uintptr(unsafe.Pointer(desktop)),
		DWPOS_SPAN,
		0)
	if hr != 0 {
		return fmt.Errorf("Unexpected value from SetPosition %d", hr)
	}

	// A null monitor ID with DWPOS_SPAN applies the file to the whole
	// virtual desktop in one call.
	hr, _, _ = syscall.Syscall(
		vtable.SetWallpaper,
		3,
		uintptr(unsafe.Pointer(desktop)),
		0,
		uintptr(unsafe.Pointer(syscall.StringToUTF16Ptr(path))))
	if hr != 0 {
		return fmt.Errorf("Unexpected value from SetWallpaper %d", hr)
	}

	return nil
}

// Windows recompresses wallpapers it considers too large, keep it from
// mangling the output more than necessary.
func setRegistryKeys() error {
	k, err := registry.OpenKey(
		registry.CURRENT_USER, `Control Panel\Desktop`, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	err = k.SetDWordValue("JPEGImportQuality", 100)
	return err
}

func CheckIfLocked() (bool, error) {
	userLib := syscall.NewLazyDLL("user32.dll")
	openInputDesktop := userLib.NewProc("OpenInputDesktop")
	closeDesktop := userLib.NewProc("CloseDesktop")

	desktop, _, _ := openInputDesktop.Call(0,
		0,
		0)
	if desktop == 0 {
		// Failure here means that the user is on a desktop we cannot access
		// That is overwhelmingly likely to be the lock screen
		return true, nil
	}
	ret, _, _ := closeDesktop.Call(desktop)
	if ret == 0 {
		// If we can open the desktop, not being able to close it is a problem.
		return true, errors.New("Failed to close desktop handle")
	}

	return false, nil
}

const ATTACH_PARENT_PROCESS = uintptr(^uint32(0)) // (DWORD)-1

var modkernel32 = syscall.NewLazyDLL("kernel32.dll")
var procAttachConsole = modkernel32.NewProc("AttachConsole")

// Attempts to attach to the parent console if one exists so we can get stdout
// Note that it's impossible to properly redirect stdin
// See https://stackoverflow.com/questions/23743217/
func AttachParentConsole() {
	r, _, _ :=
		syscall.Syscall(procAttachConsole.Addr(), 1, ATTACH_PARENT_PROCESS, 0, 0)

	if r == 0 {
		return
	}

	hout, err := syscall.GetStdHandle(syscall.STD_OUTPUT_HANDLE)
	if err != nil {
		return
	}
	herr, err := syscall.GetStdHandle(syscall.STD_ERROR_HANDLE)
	if err != nil {
		return
	}

	os.Stdout = os.NewFile(uintptr(hout), "/dev/stdout")
	os.Stderr = os.NewFile(uintptr(herr), "/dev/stderr")
}
