package weightfile

import (
	"bufio"
	"fmt"
	"math/big"
	"os"

	"github.com/ArthurEly/finn-old/internal/threshold"
)

// ReadDat parses a ModeDat memory image back into its (NumChannels, NumSteps)
// threshold matrix, undoing the lane/step packing and sign-extending values
// per the weight datatype. It is the companion reader used by simulation
// tooling and by the round-trip tests.
func ReadDat(a *threshold.Attrs, path string) ([][]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	defer func() { _ = f.Close() }()

	thresholds := make([][]int64, a.NumChannels)
	for c := range thresholds {
		thresholds[c] = make([]int64, a.NumSteps)
	}

	bits := a.WeightType.Bitwidth()
	wb := wordBits(a)
	nibbles := (wb + 3) / 4
	fieldMask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits)), big.NewInt(1))

	scanner := bufio.NewScanner(f)
	addr := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if addr >= a.Tmem() {
			return nil, fmt.Errorf("%w: more than %d words in %s", ErrInvalidShape, a.Tmem(), path)
		}
		if len(line) != nibbles {
			return nil, fmt.Errorf("%w: word at address %d has %d hex digits, want %d",
				ErrInvalidShape, addr, len(line), nibbles)
		}
		word, ok := new(big.Int).SetString(line, 16)
		if !ok {
			return nil, fmt.Errorf("%w: bad hex word at address %d", ErrInvalidShape, addr)
		}
		// The top nibble may carry bits the word width doesn't cover.
		if word.BitLen() > wb {
			return nil, fmt.Errorf("%w: word at address %d has bits above width %d", ErrInvalidShape, addr, wb)
		}
		for lane := 0; lane < a.PE; lane++ {
			ch := addr*a.PE + lane
			for s := 0; s < a.NumSteps; s++ {
				field := new(big.Int).Rsh(word, uint((lane*a.NumSteps+s)*bits))
				field.And(field, fieldMask)
				thresholds[ch][s] = decodeValue(a, field.Uint64(), bits)
			}
		}
		addr++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	if addr != a.Tmem() {
		return nil, fmt.Errorf("%w: got %d words, want tmem %d", ErrInvalidShape, addr, a.Tmem())
	}
	return thresholds, nil
}

// decodeValue is the inverse of the writer's encodeValue.
func decodeValue(a *threshold.Attrs, raw uint64, bits int) int64 {
	if a.WeightType.Name() == "BIPOLAR" {
		return 2*int64(raw) - 1
	}
	if !a.WeightType.Signed() || bits >= 64 {
		return int64(raw)
	}
	if raw&(uint64(1)<<(bits-1)) != 0 {
		return int64(raw) - (int64(1) << bits)
	}
	return int64(raw)
}
