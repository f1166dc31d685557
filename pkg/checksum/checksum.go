package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"hash/crc64"
	"io"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/zeebo/xxh3"
)

const bufferSize = 64 * 1024 // 64KB buffer

// Algorithm names a digest used to compare file contents
type Algorithm string

const (
	MD5       Algorithm = "md5"
	SHA1      Algorithm = "sha1"
	SHA256    Algorithm = "sha256"
	XXH3      Algorithm = "xxh3"
	CRC64NVME Algorithm = "crc64nvme"
)

// ErrUnknownAlgorithm is returned for digest names that are not supported
var ErrUnknownAlgorithm = errors.New("unknown checksum algorithm")

// CRC64NVME polynomial as per AWS S3 specification
var crc64NVMETable = crc64.MakeTable(0x9a6c9329ac4bc9b5)

// Algorithms returns every supported algorithm
func Algorithms() []Algorithm {
	return []Algorithm{MD5, SHA1, SHA256, XXH3, CRC64NVME}
}

// ParseAlgorithm converts a case-insensitive name into an Algorithm
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Algorithms() {
		if alg == known {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

func (a Algorithm) String() string {
	return string(a)
}

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case XXH3:
		return &xxh3Hash128{Hasher: xxh3.New()}, nil
	case CRC64NVME:
		return crc64.New(crc64NVMETable), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}
}

// xxh3Hash128 reports the 128-bit digest from Sum instead of the 64-bit one
type xxh3Hash128 struct {
	*xxh3.Hasher
}

func (h *xxh3Hash128) Sum(b []byte) []byte {
	sum := h.Sum128().Bytes()
	return append(b, sum[:]...)
}

func (h *xxh3Hash128) Size() int {
	return 16
}

// CalculateFile calculates the digest of a file and returns it hex encoded
func CalculateFile(fsys billy.Filesystem, filePath string, alg Algorithm) (string, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Calculate(file, alg)
}

// Calculate calculates the digest of everything read from r and returns it hex encoded
func Calculate(r io.Reader, alg Algorithm) (string, error) {
	h, err := alg.newHash()
	if err != nil {
		return "", err
	}
	buffer := make([]byte, bufferSize)

	for {
		n, err := r.Read(buffer)
		if n > 0 {
			if _, err := h.Write(buffer[:n]); err != nil {
				return "", fmt.Errorf("write to hash: %w", err)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read: %w", err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
