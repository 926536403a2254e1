// Package shader compiles WGSL shader stages to SPIR-V with naga.
package shader

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic uint32 = 0x07230203

// Shader errors.
var (
	// ErrEmptySource is returned when compiling empty WGSL.
	ErrEmptySource = errors.New("shader: empty source")

	// ErrInvalidSPIRV is returned for byte code that is not a SPIR-V module.
	ErrInvalidSPIRV = errors.New("shader: invalid SPIR-V")
)

var (
	cacheMu sync.Mutex
	cache   = make(map[[sha256.Size]byte][]byte)
)

// CompileWGSL compiles WGSL source to SPIR-V bytes. Results are cached by
// source hash; the returned slice must not be modified.
func CompileWGSL(label string, source []byte) ([]byte, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("%s: %w", label, ErrEmptySource)
	}
	key := sha256.Sum256(source)

	cacheMu.Lock()
	spirv, ok := cache[key]
	cacheMu.Unlock()
	if ok {
		return spirv, nil
	}

	spirv, err := naga.Compile(string(source))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to compile shader: %w", label, err)
	}
	if err := Validate(spirv); err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	cacheMu.Lock()
	cache[key] = spirv
	cacheMu.Unlock()
	return spirv, nil
}

// Validate checks that code is a whole number of little-endian words
// starting with the SPIR-V magic number.
func Validate(code []byte) error {
	if len(code) < 20 || len(code)%4 != 0 {
		return fmt.Errorf("%w: %d bytes", ErrInvalidSPIRV, len(code))
	}
	if magic := binary.LittleEndian.Uint32(code); magic != SPIRVMagic {
		return fmt.Errorf("%w: magic %#08x", ErrInvalidSPIRV, magic)
	}
	return nil
}

// Words converts SPIR-V bytes to the uint32 words HAL shader modules take.
// SPIR-V is little-endian 32-bit words.
func Words(code []byte) ([]uint32, error) {
	if err := Validate(code); err != nil {
		return nil, err
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return words, nil
}
