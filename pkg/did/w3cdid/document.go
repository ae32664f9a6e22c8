package w3cdid

import "github.com/tcfw/didres/pkg/did/w3cdid/cryptography"

const (
	ContextV1 = "https://www.w3.org/ns/did/v1"
)

type Document struct {
	Context              []string                          `json:"@context" yaml:"context"`
	ID                   string                            `json:"id" yaml:"id"`
	AlsoKnownAs          []string                          `json:"alsoKnownAs,omitempty" yaml:"alsoKnownAs,omitempty"`
	Controller           []string                          `json:"controller,omitempty" yaml:"controller,omitempty"`
	Created              string                            `json:"created,omitempty" yaml:"created,omitempty"`
	Updated              string                            `json:"updated,omitempty" yaml:"updated,omitempty"`
	VersionID            string                            `json:"versionId,omitempty" yaml:"versionId,omitempty"`
	Deactivated          bool                              `json:"deactivated,omitempty" yaml:"deactivated,omitempty"`
	VerificationMethod   []cryptography.VerificationMethod `json:"verificationMethod,omitempty" yaml:"verificationMethod,omitempty"`
	Authentication       []string                          `json:"authentication,omitempty" yaml:"authentication,omitempty"`
	AssertionMethod      []string                          `json:"assertionMethod,omitempty" yaml:"assertionMethod,omitempty"`
	KeyAgreement         []string                          `json:"keyAgreement,omitempty" yaml:"keyAgreement,omitempty"`
	CapabilityInvocation []string                          `json:"capabilityInvocation,omitempty" yaml:"capabilityInvocation,omitempty"`
	CapabilityDelegation []string                          `json:"capabilityDelegation,omitempty" yaml:"capabilityDelegation,omitempty"`
	Service              []Service                         `json:"service,omitempty" yaml:"service,omitempty"`
}

type Service struct {
	ID              string `json:"id" yaml:"id"`
	Type            string `json:"type" yaml:"type"`
	ServiceEndpoint string `json:"serviceEndpoint" yaml:"serviceEndpoint"`
}

// FindVerificationMethod returns the verification method referenced by id, which
// may be either absolute or a fragment relative to the document id
func (d *Document) FindVerificationMethod(id string) (*cryptography.VerificationMethod, bool) {
	for i, vm := range d.VerificationMethod {
		if vm.ID == id || d.ID+vm.ID == id || vm.ID == d.ID+id {
			return &d.VerificationMethod[i], true
		}
	}

	return nil, false
}
