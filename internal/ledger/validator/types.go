package validator

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SignatureVerifier checks that sig authorizes payload under pubKey. It
	// must be total: malformed keys or signatures yield false, never a panic.
	SignatureVerifier interface {
		Verify(pubKey, payload, sig []byte) bool
	}
)
