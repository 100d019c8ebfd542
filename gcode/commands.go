package gcode

// Command builders for the handful of operations the measurement engine
// performs. Targets are absolute machine coordinates.

// RapidAxis moves a single axis to an absolute position.
func RapidAxis(axis byte, pos float64) Block {
	return Block{
		{W: 'G', Arg: 0},
		{W: axis, Arg: pos},
	}
}

// RapidXY moves to an absolute X/Y position without changing Z.
func RapidXY(x, y float64) Block {
	return Block{
		{W: 'G', Arg: 0},
		{W: 'X', Arg: x},
		{W: 'Y', Arg: y},
	}
}

// RapidZ moves to an absolute Z position.
func RapidZ(z float64) Block {
	return RapidAxis('Z', z)
}

// Home homes all axes.
func Home() Block {
	return Block{{W: 'G', Arg: 28}}
}

// ReportPosition requests the firmware's current position report.
func ReportPosition() Block {
	return Block{{W: 'M', Arg: 114}}
}

// FanOff turns off the part cooling fan with the given index.
func FanOff(index int) Block {
	return Block{
		{W: 'M', Arg: 107},
		{W: 'P', Arg: float64(index)},
	}
}
