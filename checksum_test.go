package packer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyChecksum(t *testing.T) {
	assert.Equal(t, uint32(0), EmptyChecksum{}.Sum([]byte("anything")))
	assert.Equal(t, uint32(0), EmptyChecksum{}.Sum(nil))
}

func TestCRC8KnownVector(t *testing.T) {
	// CRC-8/SMBUS (poly 0x07, init 0x00, no xorout) of "123456789" is 0xF4.
	assert.Equal(t, uint32(0xF4), CRC8Checksum{}.Sum([]byte("123456789")))
}

func TestCRC16KnownVector(t *testing.T) {
	// CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF) of "123456789" is 0x29B1.
	assert.Equal(t, uint32(0x29B1), CRC16Checksum{}.Sum([]byte("123456789")))
}

func TestCRC32KnownVector(t *testing.T) {
	// CRC-32 (IEEE) of "123456789" is 0xCBF43926.
	assert.Equal(t, uint32(0xCBF43926), CRC32Checksum{}.Sum([]byte("123456789")))
}

func TestBlake3ChecksumDeterministic(t *testing.T) {
	payload := []byte("the quick brown fox")
	a := Blake3Checksum{}.Sum(payload)
	b := Blake3Checksum{}.Sum(payload)
	assert.Equal(t, a, b)
}

func TestChecksumsDetectTampering(t *testing.T) {
	strategies := []Checksum{CRC8Checksum{}, CRC16Checksum{}, CRC32Checksum{}, Blake3Checksum{}}
	for _, cs := range strategies {
		original := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
		tampered := append([]byte{}, original...)
		tampered[2] ^= 0xFF

		sumOriginal := cs.Sum(original)
		sumTampered := cs.Sum(tampered)
		assert.NotEqual(t, sumOriginal, sumTampered, "%T should detect a single tampered byte", cs)
	}
}
