package shader

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/hellotriangle/internal/render"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic uint32 = 0x07230203

// Words turns a little-endian SPIR-V blob into the word slice shader module
// creation expects.
func Words(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, errors.Mark(errors.Newf("spir-v length %d is not a positive multiple of 4", len(b)), render.ErrShaderCompile)
	}

	byteCode := make([]uint32, len(b)/4)
	for i := 0; i < len(byteCode); i++ {
		byteCode[i] = binary.LittleEndian.Uint32(b[i*4:])
	}

	if byteCode[0] != SPIRVMagic {
		return nil, errors.Mark(errors.Newf("bad spir-v magic %#08x", byteCode[0]), render.ErrShaderCompile)
	}

	return byteCode, nil
}
