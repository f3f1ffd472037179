package proof

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dsnet/compress/bzip2"

	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/engine"
)

// WriteArtifact renders the evaluated proof under a header naming the
// credit scheme and writes it to dir/name, creating dir if needed.
// With compress set the artifact is bzip2 wrapped and named name.bz2.
// Returns the path written.
func WriteArtifact(dir, name string, sc credit.Scheme, proof *engine.ProofNode, depth int, compress bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "============= Proof with %s ===============\n", sc)
	if err := proof.WriteTree(&buf, depth); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if !compress {
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return "", fmt.Errorf("write proof artifact: %w", err)
		}
		return path, nil
	}

	path += ".bz2"
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write proof artifact: %w", err)
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return "", err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return "", err
	}
	return path, w.Flush()
}
