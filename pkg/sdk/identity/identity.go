package identity

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
)

// Identity is the credential a client uses to scope account requests.
// Two forms exist on the wire: the shared-secret pair (id + key) of the
// early API, and the public-key form of the current one. Exactly one
// form is populated. Identities live for a single session and are never
// persisted.
type Identity struct {
	// shared-secret form
	ID  string
	Key string

	// pubkey form; hex-encoded compressed secp256k1 public key
	Pubkey string

	// seckey matches Pubkey when the keypair was generated locally,
	// empty for adopted identities. Kept off the wire and unexported
	// until the server grows request signing.
	seckey string
}

// New generates a fresh pubkey-form identity.
func New() (Identity, error) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		Pubkey: hex.EncodeToString(crypto.CompressPubkey(&priv.PublicKey)),
		seckey: hex.EncodeToString(crypto.FromECDSA(priv)),
	}, nil
}

// FromPubkey adopts an identity the server already knows.
func FromPubkey(pubkey string) Identity {
	return Identity{Pubkey: pubkey}
}

// FromSharedSecret adopts the early id+key identity form.
func FromSharedSecret(id, key string) Identity {
	return Identity{ID: id, Key: key}
}

// IsZero reports whether no identity has been established.
func (i Identity) IsZero() bool {
	return i.ID == "" && i.Key == "" && i.Pubkey == ""
}

// Query returns the authentication query parameters. The server accepts
// credentials only this way; there is no auth header or cookie.
func (i Identity) Query() map[string]string {
	if i.Pubkey != "" {
		return map[string]string{"pubkey": i.Pubkey}
	}
	if i.ID != "" || i.Key != "" {
		return map[string]string{"id": i.ID, "key": i.Key}
	}
	return map[string]string{}
}
