package ledger

import (
	"github.com/pkg/errors"
	"github.com/tcfw/didres/pkg/did/w3cdid"
)

// ValidateDocument checks a record is fit to be anchored
func ValidateDocument(doc *DocumentAndStatus) error {
	if doc == nil || doc.Document == nil {
		return errors.Wrap(ErrInvalidRecord, "missing document")
	}

	if !doc.Status.Valid() {
		return errors.Wrapf(ErrInvalidRecord, "unknown document status %q", doc.Status)
	}

	if err := doc.Document.IsValid(); err != nil {
		return errors.Wrap(ErrInvalidRecord, err.Error())
	}

	return nil
}

func ValidateVCMeta(meta *VCMeta) error {
	if meta == nil || meta.ID == "" {
		return errors.Wrap(ErrInvalidRecord, "missing vc id")
	}

	if !meta.Status.Valid() {
		return errors.Wrapf(ErrInvalidRecord, "unknown vc status %q", meta.Status)
	}

	if meta.Issuer.DID == "" {
		return errors.Wrap(ErrInvalidRecord, "missing vc issuer")
	}

	return nil
}

// ParseDidKeyURL splits a DID key URL into the DID it addresses and the
// requested document version, if any
func ParseDidKeyURL(didKeyURL string) (did string, versionID string, err error) {
	u := w3cdid.URL(didKeyURL)

	did = u.DID()
	if did == "" {
		return "", "", errors.Wrap(ErrInvalidIdentifier, didKeyURL)
	}

	return did, u.VersionID(), nil
}
