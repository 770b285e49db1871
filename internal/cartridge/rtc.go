package cartridge

import (
	"encoding/binary"
	"time"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// now is replaced in tests.
var now = time.Now

const (
	rtcSeconds uint8 = iota + 0x08
	rtcMinutes
	rtcHours
	rtcDaysLow
	rtcDaysHigh
)

const (
	rtcHalt  = types.Bit6
	rtcCarry = types.Bit7
)

// rtcSaveSize is the size of the clock block appended to battery saves.
// The layout matches the one used by BGB and most other emulators.
const rtcSaveSize = 48

// RTC is the real time clock of an MBC3 cartridge. The live registers are
// brought up to date lazily, whenever they are accessed.
type RTC struct {
	registers [5]uint8
	latched   [5]uint8

	anchor    time.Time
	latchFlag uint8
	isLatched bool
}

func newRTC() *RTC {
	return &RTC{anchor: now(), latchFlag: 0xFF}
}

func (r *RTC) days() int {
	return int(r.registers[3]) | int(r.registers[4]&0x01)<<8
}

// update advances the live registers by the wall clock time elapsed since
// the last update.
func (r *RTC) update() {
	current := now()
	if r.registers[4]&rtcHalt != 0 {
		r.anchor = current
		return
	}
	elapsed := int64(current.Sub(r.anchor) / time.Second)
	if elapsed <= 0 {
		return
	}
	r.anchor = r.anchor.Add(time.Duration(elapsed) * time.Second)

	total := int64(r.registers[0]) +
		int64(r.registers[1])*60 +
		int64(r.registers[2])*3600 +
		int64(r.days())*86400 +
		elapsed

	r.registers[0] = uint8(total % 60)
	r.registers[1] = uint8(total / 60 % 60)
	r.registers[2] = uint8(total / 3600 % 24)

	days := total / 86400
	if days >= 512 {
		days %= 512
		r.registers[4] |= rtcCarry
	}
	r.registers[3] = uint8(days)
	r.registers[4] = r.registers[4]&^0x01 | uint8(days>>8)&0x01
}

// latch copies the live registers into the latched set on a 0 -> 1
// transition of the written value.
func (r *RTC) latch(value uint8) {
	if r.latchFlag == 0x00 && value == 0x01 {
		r.update()
		r.latched = r.registers
		r.isLatched = true
	}
	r.latchFlag = value
}

func (r *RTC) read(register uint8) uint8 {
	index := register - rtcSeconds
	if r.isLatched {
		return r.latched[index]
	}
	r.update()
	return r.registers[index]
}

var rtcMasks = [5]uint8{0x3F, 0x3F, 0x1F, 0xFF, 0xC1}

func (r *RTC) write(register uint8, value uint8) {
	r.update()
	index := register - rtcSeconds
	r.registers[index] = value & rtcMasks[index]
	if register == rtcSeconds {
		// writing the seconds clears the sub-second counter
		r.anchor = now()
	}
}

func (r *RTC) marshal() []byte {
	r.update()
	b := make([]byte, rtcSaveSize)
	for i := 0; i < 5; i++ {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(r.registers[i]))
		binary.LittleEndian.PutUint32(b[20+i*4:], uint32(r.latched[i]))
	}
	binary.LittleEndian.PutUint64(b[40:], uint64(r.anchor.Unix()))
	return b
}

func (r *RTC) unmarshal(b []byte) {
	for i := 0; i < 5; i++ {
		r.registers[i] = uint8(binary.LittleEndian.Uint32(b[i*4:]))
		r.latched[i] = uint8(binary.LittleEndian.Uint32(b[20+i*4:]))
	}
	r.anchor = time.Unix(int64(binary.LittleEndian.Uint64(b[40:])), 0)
}

func (r *RTC) Load(s *types.State) {
	s.ReadData(r.registers[:])
	s.ReadData(r.latched[:])
	r.anchor = time.Unix(int64(s.Read64()), 0)
	r.latchFlag = s.Read8()
	r.isLatched = s.ReadBool()
}

func (r *RTC) Save(s *types.State) {
	r.update()
	s.WriteData(r.registers[:])
	s.WriteData(r.latched[:])
	s.Write64(uint64(r.anchor.Unix()))
	s.Write8(r.latchFlag)
	s.WriteBool(r.isLatched)
}
