package gte

// GetReg reads GTE data/control register index (0..63) as the CPU's
// mfc2/cfc2 would see it.
func (g *GTE) GetReg(index uint32) uint32 {
	switch index {
	case 0:
		return uint32(uint16(g.V0.X)) | uint32(uint16(g.V0.Y))<<16
	case 1:
		return uint32(int32(g.V0.Z))
	case 2:
		return uint32(uint16(g.V1.X)) | uint32(uint16(g.V1.Y))<<16
	case 3:
		return uint32(int32(g.V1.Z))
	case 4:
		return uint32(uint16(g.V2.X)) | uint32(uint16(g.V2.Y))<<16
	case 5:
		return uint32(int32(g.V2.Z))
	case 6:
		return g.RGBC.toU32()
	case 7:
		return uint32(uint16(g.OrderingZ))
	case 8:
		return uint32(int32(g.IR0))
	case 9:
		return uint32(int32(g.IR1))
	case 10:
		return uint32(int32(g.IR2))
	case 11:
		return uint32(int32(g.IR3))
	case 12:
		return uint32(uint16(g.Screen[0].X)) | uint32(uint16(g.Screen[0].Y))<<16
	case 13:
		return uint32(uint16(g.Screen[1].X)) | uint32(uint16(g.Screen[1].Y))<<16
	case 14, 15:
		return uint32(uint16(g.Screen[2].X)) | uint32(uint16(g.Screen[2].Y))<<16
	case 16:
		return uint32(uint16(g.ScreenZ[0]))
	case 17:
		return uint32(uint16(g.ScreenZ[1]))
	case 18:
		return uint32(uint16(g.ScreenZ[2]))
	case 19:
		return uint32(uint16(g.ScreenZ[3]))
	case 20:
		return g.RGB[0].toU32()
	case 21:
		return g.RGB[1].toU32()
	case 22:
		return g.RGB[2].toU32()
	case 23:
		return g.UnusedReg
	case 24:
		return uint32(g.MAC0)
	case 25:
		return uint32(g.MAC1)
	case 26:
		return uint32(g.MAC2)
	case 27:
		return uint32(g.MAC3)
	case 28, 29:
		r := clamp32(int32(g.IR1)/0x80, 0, 0x1F)
		gg := clamp32(int32(g.IR2)/0x80, 0, 0x1F)
		b := clamp32(int32(g.IR3)/0x80, 0, 0x1F)
		return uint32(r) | uint32(gg)<<5 | uint32(b)<<10
	case 30:
		return uint32(g.LeadingBitSource)
	case 31:
		return g.countLeadingBits()
	case 32:
		return pairFromMatrix(g.Rotation, 0)
	case 33:
		return pairFromMatrix(g.Rotation, 2)
	case 34:
		return pairFromMatrix(g.Rotation, 4)
	case 35:
		return pairFromMatrix(g.Rotation, 6)
	case 36:
		return uint32(int32(g.Rotation[2][2]))
	case 37:
		return uint32(g.TL.X)
	case 38:
		return uint32(g.TL.Y)
	case 39:
		return uint32(g.TL.Z)
	case 40:
		return pairFromMatrix(g.Light, 0)
	case 41:
		return pairFromMatrix(g.Light, 2)
	case 42:
		return pairFromMatrix(g.Light, 4)
	case 43:
		return pairFromMatrix(g.Light, 6)
	case 44:
		return uint32(int32(g.Light[2][2]))
	case 45:
		return uint32(g.Background.X)
	case 46:
		return uint32(g.Background.Y)
	case 47:
		return uint32(g.Background.Z)
	case 48:
		return pairFromMatrix(g.Color, 0)
	case 49:
		return pairFromMatrix(g.Color, 2)
	case 50:
		return pairFromMatrix(g.Color, 4)
	case 51:
		return pairFromMatrix(g.Color, 6)
	case 52:
		return uint32(int32(g.Color[2][2]))
	case 53:
		return uint32(g.FarColor.X)
	case 54:
		return uint32(g.FarColor.Y)
	case 55:
		return uint32(g.FarColor.Z)
	case 56:
		return uint32(g.ScreenOffsetX)
	case 57:
		return uint32(g.ScreenOffsetY)
	case 58:
		return uint32(g.ProjPlaneDist)
	case 59:
		return uint32(int32(g.DepthQueueA))
	case 60:
		return uint32(g.DepthQueueB)
	case 61:
		return uint32(int32(g.ZScale3))
	case 62:
		return uint32(int32(g.ZScale4))
	case 63:
		return g.Flag
	}
	return 0
}

// SetReg writes GTE data/control register index (0..63) as the CPU's
// mtc2/ctc2 would drive it.
func (g *GTE) SetReg(index uint32, value uint32) {
	switch index {
	case 0:
		g.V0.X, g.V0.Y = int16(value), int16(value>>16)
	case 1:
		g.V0.Z = int16(value)
	case 2:
		g.V1.X, g.V1.Y = int16(value), int16(value>>16)
	case 3:
		g.V1.Z = int16(value)
	case 4:
		g.V2.X, g.V2.Y = int16(value), int16(value>>16)
	case 5:
		g.V2.Z = int16(value)
	case 6:
		g.RGBC = colorFromU32(value)
	case 7:
		g.OrderingZ = int16(uint16(value))
	case 8:
		g.IR0 = int16(value)
	case 9:
		g.IR1 = int16(value)
	case 10:
		g.IR2 = int16(value)
	case 11:
		g.IR3 = int16(value)
	case 12:
		g.Screen[0].X, g.Screen[0].Y = int16(value), int16(value>>16)
	case 13:
		g.Screen[1].X, g.Screen[1].Y = int16(value), int16(value>>16)
	case 14:
		g.Screen[2].X, g.Screen[2].Y = int16(value), int16(value>>16)
	case 15:
		// writing register 15 scrolls the screen X/Y FIFO
		g.Screen[0] = g.Screen[1]
		g.Screen[1] = g.Screen[2]
		g.Screen[2] = ScreenXY{X: int16(value), Y: int16(value >> 16)}
	case 16:
		g.ScreenZ[0] = int32(uint16(value))
	case 17:
		g.ScreenZ[1] = int32(uint16(value))
	case 18:
		g.ScreenZ[2] = int32(uint16(value))
	case 19:
		g.ScreenZ[3] = int32(uint16(value))
	case 20:
		g.RGB[0] = colorFromU32(value)
	case 21:
		g.RGB[1] = colorFromU32(value)
	case 22:
		g.RGB[2] = colorFromU32(value)
	case 23:
		g.UnusedReg = value
	case 24:
		g.MAC0 = int32(value)
	case 25:
		g.MAC1 = int32(value)
	case 26:
		g.MAC2 = int32(value)
	case 27:
		g.MAC3 = int32(value)
	case 28:
		// splat a 5-5-5 RGB value across IR1/IR2/IR3, scaled by 0x80
		g.IR1 = int16((value >> 0 & 0x1F) * 0x80)
		g.IR2 = int16((value >> 5 & 0x1F) * 0x80)
		g.IR3 = int16((value >> 10 & 0x1F) * 0x80)
	case 29:
		// read-only derived register
	case 30:
		g.LeadingBitSource = int32(value)
	case 31:
		// read-only derived register
	case 32:
		setMatrixPair(&g.Rotation, 0, value)
	case 33:
		setMatrixPair(&g.Rotation, 2, value)
	case 34:
		setMatrixPair(&g.Rotation, 4, value)
	case 35:
		setMatrixPair(&g.Rotation, 6, value)
	case 36:
		g.Rotation[2][2] = int16(value)
	case 37:
		g.TL.X = int32(value)
	case 38:
		g.TL.Y = int32(value)
	case 39:
		g.TL.Z = int32(value)
	case 40:
		setMatrixPair(&g.Light, 0, value)
	case 41:
		setMatrixPair(&g.Light, 2, value)
	case 42:
		setMatrixPair(&g.Light, 4, value)
	case 43:
		setMatrixPair(&g.Light, 6, value)
	case 44:
		g.Light[2][2] = int16(value)
	case 45:
		g.Background.X = int32(value)
	case 46:
		g.Background.Y = int32(value)
	case 47:
		g.Background.Z = int32(value)
	case 48:
		setMatrixPair(&g.Color, 0, value)
	case 49:
		setMatrixPair(&g.Color, 2, value)
	case 50:
		setMatrixPair(&g.Color, 4, value)
	case 51:
		setMatrixPair(&g.Color, 6, value)
	case 52:
		g.Color[2][2] = int16(value)
	case 53:
		g.FarColor.X = int32(value)
	case 54:
		g.FarColor.Y = int32(value)
	case 55:
		g.FarColor.Z = int32(value)
	case 56:
		g.ScreenOffsetX = int32(value)
	case 57:
		g.ScreenOffsetY = int32(value)
	case 58:
		g.ProjPlaneDist = uint16(value)
	case 59:
		g.DepthQueueA = int16(value)
	case 60:
		g.DepthQueueB = int32(value)
	case 61:
		g.ZScale3 = int16(value)
	case 62:
		g.ZScale4 = int16(value)
	case 63:
		// writable bits are ~0x80000FFF
		g.Flag = (g.Flag & 0x80000FFF) | (value &^ 0x80000FFF)
	}
}

// matrix elements are indexed row-major, 9 total (0..8); setMatrixPair
// writes two consecutive elements from one 32-bit register.
func setMatrixPair(m *Matrix3x3, offset int, value uint32) {
	setMatrixElem(m, offset, int16(value))
	if offset+1 < 9 {
		setMatrixElem(m, offset+1, int16(value>>16))
	}
}

func setMatrixElem(m *Matrix3x3, index int, v int16) {
	m[index/3][index%3] = v
}

func matrixElem(m Matrix3x3, index int) int16 {
	return m[index/3][index%3]
}

func pairFromMatrix(m Matrix3x3, offset int) uint32 {
	lo := uint32(uint16(matrixElem(m, offset)))
	hi := uint32(uint16(matrixElem(m, offset+1)))
	return lo | hi<<16
}

// countLeadingBits implements register 31: leading-one count if the source
// register's top bit is set, else leading-zero count.
func (g *GTE) countLeadingBits() uint32 {
	v := uint32(g.LeadingBitSource)
	if v>>31 != 0 {
		return countLeadingOnes(v)
	}
	return countLeadingZeros(v)
}

func countLeadingZeros(v uint32) uint32 {
	if v == 0 {
		return 32
	}
	n := uint32(0)
	for v&0x80000000 == 0 {
		n++
		v <<= 1
	}
	return n
}

func countLeadingOnes(v uint32) uint32 {
	return countLeadingZeros(^v)
}
