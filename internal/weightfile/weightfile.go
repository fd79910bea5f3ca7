// Package weightfile serializes per-channel threshold values into the on-disk
// encodings consumed by synthesis and by the runtime weight-write interface.
//
// Element ordering is safety-critical for the consuming hardware and is fixed
// as follows for every mode:
//
//   - channel c is handled by PE lane c % PE at memory address c / PE, so the
//     word at address a packs channels a*PE+0 .. a*PE+PE-1;
//   - lane 0 occupies the least-significant field of a word, lanes ascending
//     toward the MSB;
//   - within a lane, step 0 is least significant, steps ascending.
//
// Values are encoded two's-complement at the weight datatype's bitwidth.
package weightfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/ArthurEly/finn-old/internal/threshold"
)

// Mode selects the on-disk encoding.
type Mode string

const (
	// ModeConst emits a SystemVerilog constant-array declaration for
	// build-time embedded thresholds (channel-major, step-minor).
	ModeConst Mode = "const"
	// ModeDat emits a line-oriented memory image for simulation: one
	// hardware memory word per line, tmem lines, fixed-width lowercase hex.
	ModeDat Mode = "dat"
	// ModeRuntime emits the byte layout of the decoupled runtime-write
	// interface: each word zero-padded to a multiple of 32 bits and split
	// into little-endian 32-bit words, least-significant word first,
	// addresses ascending.
	ModeRuntime Mode = "runtime"
)

// Write serializes thresholds, shaped (NumChannels, NumSteps), to path in the
// given mode. The destination is replaced atomically via temp file + rename.
func Write(a *threshold.Attrs, thresholds [][]int64, mode Mode, path string) error {
	if err := checkShape(a, thresholds); err != nil {
		return err
	}

	var buf bytes.Buffer
	switch mode {
	case ModeConst:
		emitConst(&buf, a, thresholds)
	case ModeDat:
		emitDat(&buf, a, thresholds)
	case ModeRuntime:
		emitRuntime(&buf, a, thresholds)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	return nil
}

func checkShape(a *threshold.Attrs, thresholds [][]int64) error {
	if len(thresholds) != a.NumChannels {
		return fmt.Errorf("%w: got %d rows, want %d channels", ErrInvalidShape, len(thresholds), a.NumChannels)
	}
	for c, row := range thresholds {
		if len(row) != a.NumSteps {
			return fmt.Errorf("%w: channel %d has %d steps, want %d", ErrInvalidShape, c, len(row), a.NumSteps)
		}
		for s, v := range row {
			if !a.WeightType.Allowed(v) {
				return fmt.Errorf("%w: threshold[%d][%d] = %d not representable in %s",
					threshold.ErrValidation, c, s, v, a.WeightType)
			}
		}
	}
	return nil
}

// emitConst writes a SystemVerilog localparam initializer. Row c holds the
// thresholds of channel c with steps ascending left to right.
func emitConst(buf *bytes.Buffer, a *threshold.Attrs, thresholds [][]int64) {
	wdt := a.WeightType
	sign := "logic"
	if wdt.Signed() {
		sign = "logic signed"
	}
	fmt.Fprintf(buf, "// thresholding constants: %d channels x %d steps, %s\n",
		a.NumChannels, a.NumSteps, wdt.Name())
	fmt.Fprintf(buf, "// ordering: channel-major, step-minor\n")
	fmt.Fprintf(buf, "localparam %s [%d:0] THRESHOLDS [%d][%d] = '{\n",
		sign, wdt.Bitwidth()-1, a.NumChannels, a.NumSteps)
	for c, row := range thresholds {
		buf.WriteString("  '{")
		for s, v := range row {
			if s > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(buf, "%d", v)
		}
		buf.WriteString("}")
		if c < len(thresholds)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("};\n")
}

func emitDat(buf *bytes.Buffer, a *threshold.Attrs, thresholds [][]int64) {
	nibbles := (wordBits(a) + 3) / 4
	for addr := 0; addr < a.Tmem(); addr++ {
		fmt.Fprintf(buf, "%0*x\n", nibbles, packWord(a, thresholds, addr))
	}
}

func emitRuntime(buf *bytes.Buffer, a *threshold.Attrs, thresholds [][]int64) {
	words32 := (wordBits(a) + 31) / 32
	mask32 := big.NewInt(0xffffffff)
	var le [4]byte
	for addr := 0; addr < a.Tmem(); addr++ {
		word := packWord(a, thresholds, addr)
		for i := 0; i < words32; i++ {
			chunk := new(big.Int).Rsh(word, uint(32*i))
			chunk.And(chunk, mask32)
			binary.LittleEndian.PutUint32(le[:], uint32(chunk.Uint64()))
			buf.Write(le[:])
		}
	}
}

// wordBits is the hardware memory word width: PE * wbits * NumSteps.
func wordBits(a *threshold.Attrs) int {
	return a.PE * a.WeightType.Bitwidth() * a.NumSteps
}

// packWord packs the PE channel lanes of one memory address into a word.
func packWord(a *threshold.Attrs, thresholds [][]int64, addr int) *big.Int {
	bits := a.WeightType.Bitwidth()
	word := new(big.Int)
	field := new(big.Int)
	for lane := 0; lane < a.PE; lane++ {
		ch := addr*a.PE + lane
		for s := 0; s < a.NumSteps; s++ {
			field.SetUint64(encodeValue(a, thresholds[ch][s], bits))
			field.Lsh(field, uint((lane*a.NumSteps+s)*bits))
			word.Or(word, field)
		}
	}
	return word
}

// encodeValue encodes v two's-complement at the weight bitwidth. BIPOLAR is
// the exception: its {-1, +1} domain maps onto {0, 1}, matching the hardware
// encoding; plain two's complement cannot hold +1 in one signed bit.
func encodeValue(a *threshold.Attrs, v int64, bits int) uint64 {
	if a.WeightType.Name() == "BIPOLAR" {
		return uint64((v + 1) / 2)
	}
	if bits >= 64 {
		return uint64(v)
	}
	return uint64(v) & ((uint64(1) << bits) - 1)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".weights-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
