package cryptography

type VerificationMethodType string

const (
	Bls12381G1Key2020                 VerificationMethodType = "Bls12381G1Key2020"
	Bls12381G2Key2020                 VerificationMethodType = "Bls12381G2Key2020"
	EcdsaSecp256k1RecoveryMethod2020  VerificationMethodType = "EcdsaSecp256k1RecoveryMethod2020"
	EcdsaSecp256k1VerificationKey2019 VerificationMethodType = "EcdsaSecp256k1VerificationKey2019"
	Ed25519VerificationKey2018        VerificationMethodType = "Ed25519VerificationKey2018"
	JsonWebKey2020                    VerificationMethodType = "JsonWebKey2020"
	PgpVerificationkey2021            VerificationMethodType = "PgpVerificationkey2021"
	RsaVerificationKey2018            VerificationMethodType = "RsaVerificationKey2018"
	Verificationcondition2021         VerificationMethodType = "Verificationcondition2021"
	X25519KeyAgreementKey2019         VerificationMethodType = "X25519KeyAgreementKey2019"
	Secp256r1VerificationKey2018      VerificationMethodType = "Secp256r1VerificationKey2018"
)

type VerificationMethod struct {
	ID                 string                 `json:"id" yaml:"id"`
	Type               VerificationMethodType `json:"type" yaml:"type"`
	Controller         string                 `json:"controller" yaml:"controller"`
	PublicKeyJwk       map[string]string      `json:"publicKeyJwk,omitempty" yaml:"publicKeyJwk,omitempty"`
	PublicKeyMultibase string                 `json:"publicKeyMultibase,omitempty" yaml:"publicKeyMultibase,omitempty"`
	AuthType           int                    `json:"authType,omitempty" yaml:"authType,omitempty"`
}
