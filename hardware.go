package coolled

import "strings"

// Action is a logical operation the sign understands. The hardware command
// byte for an action differs (or may differ) between device generations, so
// commands name actions and resolve the byte through a Hardware table at
// encode time.
type Action int

const (
	ActionMusic Action = iota
	ActionText
	ActionImage
	ActionAnimation
	ActionIcon
	ActionButtonOff
	ActionMode
	ActionSpeed
	ActionBrightness
	ActionSwitch
	ActionXfer
	ActionInvertDisplay
	ActionClearMaybe
	ActionShowIcon
	ActionPowerDown
	ActionButtonOn
	ActionInvertOrSomething
	ActionRequestSomething
	ActionInitialize
)

// Generation identifies a device family, selected once at connect time from
// the advertised device name.
type Generation int

const (
	CoolLEDX Generation = iota
	CoolLEDM
)

func (g Generation) String() string {
	if g == CoolLEDM {
		return "CoolLEDM"
	}
	return "CoolLEDX"
}

// The command byte tables are reverse-engineered. Entries marked unproven
// come from vendor app traffic captures or third-party references and have
// not been verified against hardware. Note that ActionIcon and
// ActionButtonOff genuinely share 0x05 on known generations; the overlap is
// real hardware behavior, not a table mistake.
var commandBytes = map[Generation]map[Action]byte{
	CoolLEDX: {
		ActionMusic:             0x01,
		ActionText:              0x02,
		ActionImage:             0x03,
		ActionAnimation:         0x04,
		ActionIcon:              0x05,
		ActionButtonOff:         0x05, // unproven
		ActionMode:              0x06,
		ActionSpeed:             0x07,
		ActionBrightness:        0x08,
		ActionSwitch:            0x09,
		ActionXfer:              0x0A, // unproven
		ActionInvertDisplay:     0x0C,
		ActionClearMaybe:        0x0D, // seen before text on a CoolLEDM
		ActionShowIcon:          0x11, // unproven
		ActionPowerDown:         0x12, // unproven
		ActionButtonOn:          0x13, // unproven
		ActionInvertOrSomething: 0x15, // unproven
		ActionRequestSomething:  0x1F, // app sent this, got back 01 ff 00 01 00
		ActionInitialize:        0x23,
	},
	CoolLEDM: {
		ActionMusic:             0x01,
		ActionText:              0x02,
		ActionImage:             0x03,
		ActionAnimation:         0x04,
		ActionIcon:              0x05,
		ActionButtonOff:         0x05, // unproven
		ActionMode:              0x06,
		ActionSpeed:             0x07,
		ActionBrightness:        0x08,
		ActionSwitch:            0x09,
		ActionXfer:              0x0A, // unproven
		ActionInvertDisplay:     0x0C, // works on CoolLEDM
		ActionClearMaybe:        0x0D,
		ActionShowIcon:          0x11, // unproven
		ActionPowerDown:         0x12, // unproven
		ActionButtonOn:          0x13, // unproven
		ActionInvertOrSomething: 0x15, // unproven
		ActionRequestSomething:  0x1F,
		ActionInitialize:        0x23, // works on CoolLEDM
	},
}

// Hardware resolves logical actions to protocol command bytes for one device
// generation. It is immutable and bound once per connection.
type Hardware struct {
	gen Generation
}

// HardwareFor returns the command table for a generation.
func HardwareFor(gen Generation) Hardware {
	return Hardware{gen: gen}
}

// HardwareForName selects a generation from the advertised device name.
// Unknown names fall back to the CoolLEDX table.
func HardwareForName(name string) Hardware {
	if strings.Contains(name, "CoolLEDM") {
		return Hardware{gen: CoolLEDM}
	}
	return Hardware{gen: CoolLEDX}
}

// Generation returns the generation this table belongs to.
func (h Hardware) Generation() Generation {
	return h.gen
}

// CommandByte returns the protocol command byte for an action.
func (h Hardware) CommandByte(a Action) byte {
	return commandBytes[h.gen][a]
}
