package gte

// Command decodes a COP2 immediate instruction's low 25 bits into the GTE
// command fields.
type Command struct {
	Opcode uint32
	SF     bool
	LM     bool
	MatSel uint32 // mvmva_m_mat
	VecSel uint32 // mvmva_m_vec
	TSel   uint32 // mvmva_t_vec
}

// DecodeCommand extracts the command fields from a raw 25-bit GTE command
// word (the low bits of a COP2 immediate instruction).
func DecodeCommand(value uint32) Command {
	return Command{
		Opcode: value & 0x3F,
		SF:     value&(1<<19) != 0,
		LM:     value&(1<<10) != 0,
		MatSel: (value >> 17) & 0x3,
		VecSel: (value >> 15) & 0x3,
		TSel:   (value >> 13) & 0x3,
	}
}

// Execute runs the command encoded in cmdValue. Every command first clears
// the flag register, then saturates/overflow-checks intermediates, then
// recomputes the master error bit.
func (g *GTE) Execute(cmdValue uint32) {
	g.resetFlag()

	cmd := DecodeCommand(cmdValue)
	shift := uint(0)
	if cmd.SF {
		shift = 12
	}
	lm := cmd.LM

	switch cmd.Opcode {
	case 0x01:
		g.rtps(g.V0, shift, lm, true)
	case 0x06:
		g.nclip()
	case 0x0C:
		g.op(shift, lm)
	case 0x10:
		g.dpcs(shift, lm)
	case 0x11:
		g.intpl(shift, lm)
	case 0x12:
		g.mvmva(cmd, shift, lm)
	case 0x13:
		g.ncKernel(2, g.V0, shift, lm)
	case 0x14:
		g.cdp(shift, lm)
	case 0x16:
		g.ncKernel(2, g.V0, shift, lm)
		g.ncKernel(2, g.V1, shift, lm)
		g.ncKernel(2, g.V2, shift, lm)
	case 0x1B:
		g.ncKernel(1, g.V0, shift, lm)
	case 0x1C:
		g.cc(shift, lm)
	case 0x1E:
		g.ncKernel(0, g.V0, shift, lm)
	case 0x20:
		g.ncKernel(0, g.V0, shift, lm)
		g.ncKernel(0, g.V1, shift, lm)
		g.ncKernel(0, g.V2, shift, lm)
	case 0x28:
		g.sqr(shift, lm)
	case 0x29:
		g.dcpl(shift, lm)
	case 0x2A:
		// bug: all three iterations read color FIFO slot 0, not slots 0/1/2.
		// This is genuine PS1 hardware behaviour (the FIFO itself shifts
		// between iterations) -- do not "fix" it.
		g.dpcKernel(g.RGB[0], shift, lm)
		g.dpcKernel(g.RGB[0], shift, lm)
		g.dpcKernel(g.RGB[0], shift, lm)
	case 0x2D:
		g.avsz3()
	case 0x2E:
		g.avsz4()
	case 0x30:
		g.rtps(g.V0, shift, lm, false)
		g.rtps(g.V1, shift, lm, false)
		g.rtps(g.V2, shift, lm, true)
	case 0x3D:
		g.gpf(shift, lm)
	case 0x3E:
		g.gpl(shift, lm)
	case 0x3F:
		g.ncKernel(1, g.V0, shift, lm)
		g.ncKernel(1, g.V1, shift, lm)
		g.ncKernel(1, g.V2, shift, lm)
	}

	g.updateMasterFlag()
}

// matrixMultiply computes m*v (+ t<<12 if t is given), sign-extending and
// overflow-checking at bit 44 between each accumulation step.
func (g *GTE) matrixMultiply(m Matrix3x3, v Vector3, t *Vector32) (x, y, z int64) {
	var tx, ty, tz int64
	if t != nil {
		tx, ty, tz = int64(t.X)<<12, int64(t.Y)<<12, int64(t.Z)<<12
	}
	x = g.checkMacAndSignExtend44(1, tx+int64(m[0][0])*int64(v.X))
	x = g.checkMacAndSignExtend44(1, x+int64(m[0][1])*int64(v.Y))
	x = g.checkMacAndSignExtend44(1, x+int64(m[0][2])*int64(v.Z))

	y = g.checkMacAndSignExtend44(2, ty+int64(m[1][0])*int64(v.X))
	y = g.checkMacAndSignExtend44(2, y+int64(m[1][1])*int64(v.Y))
	y = g.checkMacAndSignExtend44(2, y+int64(m[1][2])*int64(v.Z))

	z = g.checkMacAndSignExtend44(3, tz+int64(m[2][0])*int64(v.X))
	z = g.checkMacAndSignExtend44(3, z+int64(m[2][1])*int64(v.Y))
	z = g.checkMacAndSignExtend44(3, z+int64(m[2][2])*int64(v.Z))
	return
}

func (g *GTE) rtpKernel(v Vector3, shift uint, lm bool) int64 {
	x, y, z := g.matrixMultiply(g.Rotation, v, &g.TL)

	g.setMacAndIR(1, x, shift, lm)
	g.setMacAndIR(2, y, shift, lm)
	g.setMac(3, z, shift)

	// IR3 saturation flag triggers on MAC3>>12 regardless of sf; the actual
	// IR3 register saturates against the unshifted MAC3.
	g.saturateIR(3, int32(z)>>12, lm)
	lower := int32(-0x8000)
	if lm {
		lower = 0
	}
	g.IR3 = int16(clamp32(g.MAC3, lower, 0x7FFF))

	return z
}

func (g *GTE) rtps(v Vector3, shift uint, lm bool, lastVertex bool) {
	z := g.rtpKernel(v, shift, lm)

	g.pushScreenZ(int32(z >> 12))

	divResult := int64(g.unrDivide(uint32(g.ProjPlaneDist), uint32(g.ScreenZ[3])))

	sx := int32(g.setMac0(divResult*int64(g.IR1)+int64(g.ScreenOffsetX)) >> 16)
	sy := int32(g.setMac0(divResult*int64(g.IR2)+int64(g.ScreenOffsetY)) >> 16)
	g.pushScreenX(sx)
	g.pushScreenY(sy)

	if lastVertex {
		mac0 := g.setMac0(divResult*int64(g.DepthQueueA) + int64(g.DepthQueueB))
		g.setIR(0, int32(mac0>>12), lm)
	}
}

func (g *GTE) nclip() {
	s := g.Screen
	a := int64(s[0].X)*int64(s[1].Y) + int64(s[1].X)*int64(s[2].Y) + int64(s[2].X)*int64(s[0].Y)
	b := int64(s[0].X)*int64(s[2].Y) + int64(s[1].X)*int64(s[0].Y) + int64(s[2].X)*int64(s[1].Y)
	g.setMac0(a - b)
}

func (g *GTE) sqr(shift uint, lm bool) {
	g.setMacAndIR(1, int64(g.IR1)*int64(g.IR1), shift, lm)
	g.setMacAndIR(2, int64(g.IR2)*int64(g.IR2), shift, lm)
	g.setMacAndIR(3, int64(g.IR3)*int64(g.IR3), shift, lm)
}

func (g *GTE) avsz3() {
	avg := int64(g.ZScale3) * int64(g.ScreenZ[1]+g.ScreenZ[2]+g.ScreenZ[3])
	g.setMac0(avg)
	g.setOrderingZ(avg)
}

func (g *GTE) avsz4() {
	avg := int64(g.ZScale4) * int64(g.ScreenZ[0]+g.ScreenZ[1]+g.ScreenZ[2]+g.ScreenZ[3])
	g.setMac0(avg)
	g.setOrderingZ(avg)
}

func (g *GTE) intpl(shift uint, lm bool) {
	g.interpolateColor(int32(g.IR1)<<12, int32(g.IR2)<<12, int32(g.IR3)<<12, shift, lm)
	g.pushColorFromMac()
}

func (g *GTE) op(shift uint, lm bool) {
	m := g.Rotation
	g.setMac(1, int64(m[1][1])*int64(g.IR3)-int64(m[2][2])*int64(g.IR2), shift)
	g.setMac(2, int64(m[2][2])*int64(g.IR1)-int64(m[0][0])*int64(g.IR3), shift)
	g.setMac(3, int64(m[0][0])*int64(g.IR2)-int64(m[1][1])*int64(g.IR1), shift)

	g.setIR(1, g.MAC1, lm)
	g.setIR(2, g.MAC2, lm)
	g.setIR(3, g.MAC3, lm)
}

// mvmva is the generic selectable matrix-vector multiply-add.
func (g *GTE) mvmva(cmd Command, shift uint, lm bool) {
	var m Matrix3x3
	switch cmd.MatSel {
	case 0:
		m = g.Rotation
	case 1:
		m = g.Light
	case 2:
		m = g.Color
	case 3:
		// documented hardware bug: a matrix built from RGBC and IR0
		rr := int16(uint16(int32(g.RGBC.R) << 4))
		m[0][0] = -rr
		m[0][1] = rr
		m[0][2] = g.IR0
		m[1][0], m[1][1], m[1][2] = g.Rotation[0][2], g.Rotation[0][2], g.Rotation[0][2]
		m[2][0], m[2][1], m[2][2] = g.Rotation[1][1], g.Rotation[1][1], g.Rotation[1][1]
	}

	var v Vector3
	switch cmd.VecSel {
	case 0:
		v = g.V0
	case 1:
		v = g.V1
	case 2:
		v = g.V2
	case 3:
		v = Vector3{X: g.IR1, Y: g.IR2, Z: g.IR3}
	}

	var t Vector32
	switch cmd.TSel {
	case 0:
		t = g.TL
	case 1:
		t = g.Background
	case 2:
		t = g.FarColor
	case 3:
		t = Vector32{}
	}

	if cmd.TSel != 2 {
		x, y, z := g.matrixMultiply(m, v, &t)
		g.setMacAndIR(1, x, shift, lm)
		g.setMacAndIR(2, y, shift, lm)
		g.setMacAndIR(3, z, shift, lm)
		return
	}

	// bugged path: the far-color translation selector saturates IR from
	// only the first column, then accumulates MAC from columns 2 and 3.
	ir1 := g.checkMacAndSignExtend44(1, (int64(t.X)<<12)+int64(m[0][0])*int64(v.X))
	ir2 := g.checkMacAndSignExtend44(2, (int64(t.Y)<<12)+int64(m[1][0])*int64(v.X))
	ir3 := g.checkMacAndSignExtend44(3, (int64(t.Z)<<12)+int64(m[2][0])*int64(v.X))
	g.setIR(1, int32(int16(ir1>>shift)), lm)
	g.setIR(2, int32(int16(ir2>>shift)), lm)
	g.setIR(3, int32(int16(ir3>>shift)), lm)

	x := g.checkMacAndSignExtend44(1, int64(m[0][1])*int64(v.Y))
	x = g.checkMacAndSignExtend44(1, x+int64(m[0][2])*int64(v.Z))
	y := g.checkMacAndSignExtend44(2, int64(m[1][1])*int64(v.Y))
	y = g.checkMacAndSignExtend44(2, y+int64(m[1][2])*int64(v.Z))
	z := g.checkMacAndSignExtend44(3, int64(m[2][1])*int64(v.Y))
	z = g.checkMacAndSignExtend44(3, z+int64(m[2][2])*int64(v.Z))

	g.setMacAndIR(1, x, shift, lm)
	g.setMacAndIR(2, y, shift, lm)
	g.setMacAndIR(3, z, shift, lm)
}

// ncKernel implements the NC*/NCD*/NCC* family. kind 0 = plain normal-color
// (NCS/NCT), 1 = normal-color with RGBC modulation (NCCS/NCCT), 2 =
// normal-color depth-cue (NCDS/NCDT).
func (g *GTE) ncKernel(kind int, v Vector3, shift uint, lm bool) {
	x1, y1, z1 := g.matrixMultiply(g.Light, v, nil)
	g.setMacAndIR(1, x1, shift, lm)
	g.setMacAndIR(2, y1, shift, lm)
	g.setMacAndIR(3, z1, shift, lm)

	ir := Vector3{X: g.IR1, Y: g.IR2, Z: g.IR3}
	x2, y2, z2 := g.matrixMultiply(g.Color, ir, &g.Background)
	g.setMacAndIR(1, x2, shift, lm)
	g.setMacAndIR(2, y2, shift, lm)
	g.setMacAndIR(3, z2, shift, lm)

	switch kind {
	case 1:
		g.setMacAndIR(1, (int64(g.RGBC.R)*int64(g.IR1))<<4, shift, lm)
		g.setMacAndIR(2, (int64(g.RGBC.G)*int64(g.IR2))<<4, shift, lm)
		g.setMacAndIR(3, (int64(g.RGBC.B)*int64(g.IR3))<<4, shift, lm)
	case 2:
		mac1 := (int32(g.RGBC.R) * int32(g.IR1)) << 4
		mac2 := (int32(g.RGBC.G) * int32(g.IR2)) << 4
		mac3 := (int32(g.RGBC.B) * int32(g.IR3)) << 4
		g.interpolateColor(mac1, mac2, mac3, shift, lm)
	}

	g.pushColorFromMac()
}

func (g *GTE) cc(shift uint, lm bool) {
	ir := Vector3{X: g.IR1, Y: g.IR2, Z: g.IR3}
	x, y, z := g.matrixMultiply(g.Color, ir, &g.Background)
	g.setMacAndIR(1, x, shift, lm)
	g.setMacAndIR(2, y, shift, lm)
	g.setMacAndIR(3, z, shift, lm)

	g.setMacAndIR(1, (int64(g.RGBC.R)*int64(g.IR1))<<4, shift, lm)
	g.setMacAndIR(2, (int64(g.RGBC.G)*int64(g.IR2))<<4, shift, lm)
	g.setMacAndIR(3, (int64(g.RGBC.B)*int64(g.IR3))<<4, shift, lm)

	g.pushColorFromMac()
}

func (g *GTE) cdp(shift uint, lm bool) {
	ir := Vector3{X: g.IR1, Y: g.IR2, Z: g.IR3}
	x, y, z := g.matrixMultiply(g.Color, ir, &g.Background)
	g.setMacAndIR(1, x, shift, lm)
	g.setMacAndIR(2, y, shift, lm)
	g.setMacAndIR(3, z, shift, lm)

	mac1 := (int32(g.RGBC.R) * int32(g.IR1)) << 4
	mac2 := (int32(g.RGBC.G) * int32(g.IR2)) << 4
	mac3 := (int32(g.RGBC.B) * int32(g.IR3)) << 4
	g.interpolateColor(mac1, mac2, mac3, shift, lm)

	g.pushColorFromMac()
}

func (g *GTE) dpcKernel(c Color, shift uint, lm bool) {
	g.setMac(1, int64(c.R)<<16, 0)
	g.setMac(2, int64(c.G)<<16, 0)
	g.setMac(3, int64(c.B)<<16, 0)

	g.interpolateColor(g.MAC1, g.MAC2, g.MAC3, shift, lm)
	g.pushColorFromMac()
}

func (g *GTE) dpcs(shift uint, lm bool) {
	g.dpcKernel(g.RGBC, shift, lm)
}

func (g *GTE) dcpl(shift uint, lm bool) {
	mac1 := (int32(g.RGBC.R) * int32(g.IR1)) << 4
	mac2 := (int32(g.RGBC.G) * int32(g.IR2)) << 4
	mac3 := (int32(g.RGBC.B) * int32(g.IR3)) << 4
	g.interpolateColor(mac1, mac2, mac3, shift, lm)
	g.pushColorFromMac()
}

func (g *GTE) gpf(shift uint, lm bool) {
	g.setMacAndIR(1, int64(g.IR1)*int64(g.IR0), shift, lm)
	g.setMacAndIR(2, int64(g.IR2)*int64(g.IR0), shift, lm)
	g.setMacAndIR(3, int64(g.IR3)*int64(g.IR0), shift, lm)
	g.pushColorFromMac()
}

func (g *GTE) gpl(shift uint, lm bool) {
	g.setMacAndIR(1, int64(g.IR1)*int64(g.IR0)+(int64(g.MAC1)<<shift), shift, lm)
	g.setMacAndIR(2, int64(g.IR2)*int64(g.IR0)+(int64(g.MAC2)<<shift), shift, lm)
	g.setMacAndIR(3, int64(g.IR3)*int64(g.IR0)+(int64(g.MAC3)<<shift), shift, lm)
	g.pushColorFromMac()
}
