// +build !windows

package spanpaperlib

import (
	"errors"
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"regexp"
	"strings"
	"syscall"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

type sessionType int
type environment int

const (
	xType sessionType = iota
	// wayland sessionType = iota
)

const (
	gnome   environment = iota
	i3      environment = iota
	unknown environment = iota
)

type session struct {
	display string
	sType   sessionType
	env     environment
}

const mmPerInch = 25.4

var sysProcAttr = &syscall.SysProcAttr{}

// Assumes a display ID of the form ":[0-9]+"
// True if it's definitely a local X session
func testXSession(session string) bool {
	_, err := os.Stat("/tmp/.X11-unix/X" + strings.TrimLeft(session, ":"))
	return err == nil
}

func getSessionType(display string) (sessionType, error) {
	if testXSession(display) {
		return xType, nil
	}
	return -1, errors.New("Unknown session type")
}

var displayRE = regexp.MustCompile(`^:[0-9]+`)

// Trims individual screens out of an X11 DISPLAY variable
func trimDisplay(display string) string {
	trimmed := displayRE.FindString(display)
	if trimmed != "" {
		return trimmed
	}
	return display
}

// TODO -- return more than one
func listSessionIDs() ([]string, error) {
	// If $DISPLAY is set we just check to see if it's an X session
	d := trimDisplay(os.Getenv("DISPLAY"))
	if d != "" {
		if testXSession(d) {
			return []string{d}, nil
		}
		return nil, errors.New(
			"$DISPLAY refers to a non-X session. Wayland is only supported " +
				"through XWayland")
	}

	displays, err := runBash(
		`w "$USER" | { grep ' :[0-9]*' || test $? = 1; } | awk '{print $2}'`)
	if err != nil {
		return nil, err
	}

	for _, d := range strings.Split(strings.TrimSpace(displays), "\n") {
		if testXSession(d) {
			return []string{d}, nil
		}
	}

	return nil, nil
}

func listSessions() ([]session, error) {
	ids, err := listSessionIDs()
	if err != nil {
		return nil, err
	}
	output := []session{}

	for _, id := range ids {
		s := session{display: id}
		t, err := getSessionType(id)
		if err != nil {
			return nil, err
		}
		s.sType = t

		output = append(output, s)
	}
	return output, nil
}

// detectEnvironment sniffs the WM so the setter knows which mechanism
// applies. Anything unrecognized gets feh.
func detectEnvironment(s *session) error {
	X, err := xgbutil.NewConnDisplay(s.display)
	if err != nil {
		return err
	}
	defer X.Conn().Close()

	wm, err := ewmh.GetEwmhWM(X)
	if err != nil {
		return err
	}

	wm = strings.ToLower(wm)
	if strings.Contains(wm, "gnome") {
		s.env = gnome
	} else if wm == "i3" {
		s.env = i3
	} else {
		fmt.Fprintf(os.Stderr, "Encountered unknown WM/DE: %s\n", wm)
		s.env = unknown
	}
	return nil
}

// detectXOutputs reads every connected RandR output: native resolution,
// virtual position, rotation, and the panel's reported physical size.
func detectXOutputs(s *session) ([]*Monitor, []Placement, error) {
	X, err := xgbutil.NewConnDisplay(s.display)
	if err != nil {
		return nil, nil, err
	}
	Xgb := X.Conn()
	defer Xgb.Close()

	err = randr.Init(Xgb)
	if err != nil {
		return nil, nil, err
	}

	root := xproto.Setup(Xgb).DefaultScreen(Xgb).Root

	resources, err := randr.GetScreenResources(Xgb, root).Reply()
	if err != nil {
		return nil, nil, err
	}

	monitors := []*Monitor{}
	placements := []Placement{}

	for _, output := range resources.Outputs {
		oi, err := randr.GetOutputInfo(Xgb, output, 0).Reply()
		if err != nil {
			return nil, nil, err
		}
		if oi.Connection != randr.ConnectionConnected || oi.Crtc == 0 {
			continue
		}

		ci, err := randr.GetCrtcInfo(Xgb, oi.Crtc, 0).Reply()
		if err != nil {
			return nil, nil, err
		}
		if ci.Width == 0 || ci.Height == 0 {
			continue
		}

		m := &Monitor{Name: string(oi.Name)}

		// CRTC dimensions are post-rotation, the monitor model wants the
		// panel's native orientation.
		portrait := ci.Rotation&(randr.RotationRotate90|randr.RotationRotate270) != 0
		if portrait {
			m.ResX = int(ci.Height)
			m.ResY = int(ci.Width)
			m.Rotation = 90
		} else {
			m.ResX = int(ci.Width)
			m.ResY = int(ci.Height)
		}
		m.AspectX, m.AspectY = aspectRatio(m.ResX, m.ResY)

		res := math.Sqrt(float64(m.ResX*m.ResX + m.ResY*m.ResY))
		if oi.MmWidth > 0 && oi.MmHeight > 0 {
			mmW, mmH := float64(oi.MmWidth), float64(oi.MmHeight)
			m.Diagonal = math.Sqrt(mmW*mmW+mmH*mmH) / mmPerInch
		} else {
			// Projectors and VMs tend to report nothing useful.
			m.Diagonal = res / assumedPPI
		}

		// Seed physical positions from the virtual ones at this panel's
		// own density. Good enough to edit from, no substitute for a tape
		// measure.
		m.X = float64(ci.X) / m.PPI()
		m.Y = float64(ci.Y) / m.PPI()

		monitors = append(monitors, m)
		placements = append(placements, Placement{
			Monitor: m.Name,
			PixelX:  float64(ci.X),
			PixelY:  float64(ci.Y),
		})
	}

	return monitors, placements, nil
}

// DetectLayout builds a starter layout from the running X session. The
// diagonal sizes are trusted only as far as the EDID data goes and the
// physical positions are estimates, both are meant to be edited.
func DetectLayout() (*Layout, error) {
	// Stop polluting stdout
	xgb.Logger.SetOutput(ioutil.Discard)
	xgbutil.Logger.SetOutput(ioutil.Discard)

	sessions, err := listSessions()
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, errors.New("No graphical sessions found")
	}

	monitors, placements, err := detectXOutputs(&sessions[0])
	if err != nil {
		return nil, err
	}

	return &Layout{Monitor: monitors, Placement: placements}, nil
}
