package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestConvertUint16Samples(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	t.Run("little to big", func(t *testing.T) {
		src := []byte{0x01, 0x02, 0x03, 0x04}
		dst := make([]byte, 4)
		n := ConvertUint16Samples(dst, src, le, be)
		require.Equal(t, 4, n)
		require.Equal(t, []byte{0x02, 0x01, 0x04, 0x03}, dst)
	})

	t.Run("round trip in place", func(t *testing.T) {
		buf := []byte{0xAA, 0xBB, 0xCC, 0xDD}
		ConvertUint16Samples(buf, buf, le, be)
		ConvertUint16Samples(buf, buf, be, le)
		require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, buf)
	})

	t.Run("same order copies", func(t *testing.T) {
		src := []byte{1, 2, 3, 4}
		dst := make([]byte, 4)
		require.Equal(t, 4, ConvertUint16Samples(dst, src, le, le))
		require.Equal(t, src, dst)
	})

	t.Run("odd trailing byte ignored", func(t *testing.T) {
		src := []byte{1, 2, 3}
		dst := make([]byte, 3)
		require.Equal(t, 2, ConvertUint16Samples(dst, src, le, be))
		require.Equal(t, []byte{2, 1, 0}, dst)
	})
}
