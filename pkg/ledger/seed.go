package ledger

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Seed is the on disk format used to anchor records into writable ledgers
type Seed struct {
	Documents []DocumentAndStatus `yaml:"documents"`
	VCs       []VCMeta            `yaml:"vcs"`
}

// Import reads a yaml Seed from r and writes every record to w. It returns
// the number of records written.
func Import(ctx context.Context, w Writer, r io.Reader) (int, error) {
	seed := &Seed{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(seed); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, errors.Wrap(err, "decoding seed")
	}

	n := 0

	for i := range seed.Documents {
		if err := w.PutDidDoc(ctx, &seed.Documents[i]); err != nil {
			return n, errors.Wrapf(err, "importing document %d", i)
		}
		n++
	}

	for i := range seed.VCs {
		if err := w.PutVcMetadata(ctx, &seed.VCs[i]); err != nil {
			return n, errors.Wrapf(err, "importing vc %d", i)
		}
		n++
	}

	return n, nil
}

// ImportFile is Import over the contents of the file at path
func ImportFile(ctx context.Context, w Writer, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "opening seed file")
	}
	defer f.Close()

	return Import(ctx, w, f)
}
