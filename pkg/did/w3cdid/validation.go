package w3cdid

import (
	"github.com/pkg/errors"
	"github.com/tcfw/didres/pkg/did/w3cdid/cryptography"
)

var (
	ErrMissingID          = errors.New("document has no id")
	ErrInvalidID          = errors.New("document id is not a DID")
	ErrInvalidVerificaton = errors.New("invalid verification method")
)

// IsValid performs structural checks on the document. It does not
// check signatures or the ledger history of the document
func (d *Document) IsValid() error {
	if d.ID == "" {
		return ErrMissingID
	}

	u := URL(d.ID)
	if u.DID() != d.ID {
		return ErrInvalidID
	}

	for _, vm := range d.VerificationMethod {
		if err := isVerificationMethodValid(vm); err != nil {
			return errors.Wrapf(err, "verification method %s", vm.ID)
		}
	}

	rels := [][]string{
		d.Authentication,
		d.AssertionMethod,
		d.KeyAgreement,
		d.CapabilityInvocation,
		d.CapabilityDelegation,
	}

	for _, rel := range rels {
		for _, ref := range rel {
			if _, ok := d.FindVerificationMethod(ref); !ok {
				return errors.Wrapf(ErrInvalidVerificaton, "unknown reference %s", ref)
			}
		}
	}

	return nil
}

func isVerificationMethodValid(vm cryptography.VerificationMethod) error {
	if vm.ID == "" || vm.Type == "" || vm.Controller == "" {
		return ErrInvalidVerificaton
	}

	if vm.PublicKeyMultibase != "" {
		if _, err := cryptography.DecodeMultibase(vm.PublicKeyMultibase); err != nil {
			return errors.Wrap(err, "decoding multibase")
		}
	}

	if len(vm.PublicKeyJwk) > 0 {
		if _, err := cryptography.ParseJWK(vm.PublicKeyJwk); err != nil {
			return err
		}
	}

	return nil
}
