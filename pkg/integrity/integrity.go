// Package integrity computes content digests for downloaded media. The
// catalog publishes MD5 digests, so that is what we compare against; the
// hash is a compatibility requirement, not a security measure.
package integrity

import (
	"crypto/md5" //nolint:gosec // catalog digests are MD5; not used for security
	"encoding/hex"
	"io"
	"os"

	"github.com/okrause/mediasync/pkg/errors"
)

// checksumBlockSize is the read block size used while hashing.
const checksumBlockSize = 4096

// FileChecksum streams the file at path through MD5 in fixed-size
// blocks and returns the hex digest.
func FileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s for checksumming", path)
	}
	defer file.Close()

	hash := md5.New() //nolint:gosec // see package comment
	buf := make([]byte, checksumBlockSize)
	if _, err := io.CopyBuffer(hash, file, buf); err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
