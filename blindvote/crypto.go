package blindvote

import (
	"crypto/cipher"
	"crypto/rand"

	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/util"
	"golang.org/x/crypto/chacha20poly1305"
)

var CryptoError = util.NewError("crypto failure")

// SecretKey is the one-time key of the encrypted proposal list. It is
// published in the vote reveal phase.
type SecretKey []byte

func NewSecretKey() (SecretKey, error) {
	k := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(k); err != nil {
		return nil, CryptoError.Wrap(err)
	}

	return SecretKey(k), nil
}

func (sk SecretKey) IsValid([]byte) error {
	if len(sk) != chacha20poly1305.KeySize {
		return CryptoError.Errorf("wrong secret key size, %d", len(sk))
	}

	return nil
}

// Encrypt seals b with XChaCha20-Poly1305; the random nonce is prepended to
// the sealed bytes.
func Encrypt(b []byte, sk SecretKey) ([]byte, error) {
	aead, err := newAEAD(sk)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(b)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, CryptoError.Wrap(err)
	}

	return aead.Seal(nonce, nonce, b, nil), nil
}

func Decrypt(b []byte, sk SecretKey) ([]byte, error) {
	aead, err := newAEAD(sk)
	if err != nil {
		return nil, err
	}

	if len(b) < aead.NonceSize()+aead.Overhead() {
		return nil, CryptoError.Errorf("too short encrypted, %d", len(b))
	}

	nonce, sealed := b[:aead.NonceSize()], b[aead.NonceSize():]

	i, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, CryptoError.Wrap(err)
	}

	return i, nil
}

func EncryptProposalList(l base.ProposalList, sk SecretKey) ([]byte, error) {
	b, err := l.Bytes()
	if err != nil {
		return nil, CryptoError.Wrap(err)
	}

	return Encrypt(b, sk)
}

func DecryptProposalList(b []byte, sk SecretKey) (base.ProposalList, error) {
	i, err := Decrypt(b, sk)
	if err != nil {
		return nil, err
	}

	l, err := base.NewProposalListFromBytes(i)
	if err != nil {
		return nil, CryptoError.Wrap(err)
	}

	return l, nil
}

func newAEAD(sk SecretKey) (cipher.AEAD, error) {
	if err := sk.IsValid(nil); err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(sk)
	if err != nil {
		return nil, CryptoError.Wrap(err)
	}

	return aead, nil
}
