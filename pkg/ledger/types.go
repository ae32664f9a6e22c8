package ledger

import (
	"strconv"
	"strings"

	"github.com/tcfw/didres/pkg/did/w3cdid"
)

type DocumentStatus string

const (
	DocumentActivated   DocumentStatus = "ACTIVATED"
	DocumentDeactivated DocumentStatus = "DEACTIVATED"
	DocumentRevoked     DocumentStatus = "REVOKED"
	DocumentTerminated  DocumentStatus = "TERMINATED"
)

func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentActivated, DocumentDeactivated, DocumentRevoked, DocumentTerminated:
		return true
	default:
		return false
	}
}

// DocumentAndStatus is a DID document as anchored on the ledger along with
// its current lifecycle status
type DocumentAndStatus struct {
	Document *w3cdid.Document `json:"document" yaml:"document"`
	Status   DocumentStatus   `json:"status" yaml:"status"`
}

type VCStatus string

const (
	VCActive   VCStatus = "ACTIVE"
	VCInactive VCStatus = "INACTIVE"
	VCRevoked  VCStatus = "REVOKED"
)

func (s VCStatus) Valid() bool {
	switch s {
	case VCActive, VCInactive, VCRevoked:
		return true
	default:
		return false
	}
}

type Provider struct {
	DID       string `json:"did" yaml:"did"`
	CertVCRef string `json:"certVcRef,omitempty" yaml:"certVcRef,omitempty"`
}

type CredentialSchema struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// VCMeta is the on-ledger record of a verifiable credential. Dates are
// kept as recorded by the ledger.
type VCMeta struct {
	ID               string           `json:"id" yaml:"id"`
	Issuer           Provider         `json:"issuer" yaml:"issuer"`
	Subject          string           `json:"subject" yaml:"subject"`
	CredentialSchema CredentialSchema `json:"credentialSchema" yaml:"credentialSchema"`
	Status           VCStatus         `json:"status" yaml:"status"`
	IssuanceDate     string           `json:"issuanceDate,omitempty" yaml:"issuanceDate,omitempty"`
	ValidFrom        string           `json:"validFrom,omitempty" yaml:"validFrom,omitempty"`
	ValidUntil       string           `json:"validUntil,omitempty" yaml:"validUntil,omitempty"`
	FormatVersion    string           `json:"formatVersion,omitempty" yaml:"formatVersion,omitempty"`
	Language         string           `json:"language,omitempty" yaml:"language,omitempty"`
}

// CompareVersions orders versionIds numerically when both are unsigned
// integers and lexically otherwise
func CompareVersions(a, b string) int {
	an, aerr := strconv.ParseUint(a, 10, 64)
	bn, berr := strconv.ParseUint(b, 10, 64)

	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(a, b)
}
