package key

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcutil"
	"github.com/btcsuite/btcutil/base58"
)

// BTCPrivatekey signs governance payloads. Private keys never leave the
// wallet side; the governance core only handles BTCPublickey.
type BTCPrivatekey struct {
	wif *btcutil.WIF
}

func NewBTCPrivatekey() (BTCPrivatekey, error) {
	secret, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return BTCPrivatekey{}, err
	}

	wif, err := btcutil.NewWIF(secret, &chaincfg.MainNetParams, true)
	if err != nil {
		return BTCPrivatekey{}, err
	}

	return BTCPrivatekey{wif: wif}, nil
}

func MustNewBTCPrivatekey() BTCPrivatekey {
	k, err := NewBTCPrivatekey()
	if err != nil {
		panic(err)
	}

	return k
}

func NewBTCPrivatekeyFromString(s string) (BTCPrivatekey, error) {
	wif, err := btcutil.DecodeWIF(s)
	if err != nil {
		return BTCPrivatekey{}, InvalidKeyError.Wrap(err)
	}

	if !wif.IsForNet(&chaincfg.MainNetParams) {
		return BTCPrivatekey{}, InvalidKeyError.Errorf("not supported BTC network")
	}

	return BTCPrivatekey{wif: wif}, nil
}

func (bt BTCPrivatekey) String() string {
	if bt.wif == nil {
		return ""
	}

	return bt.wif.String()
}

func (bt BTCPrivatekey) IsValid([]byte) error {
	if bt.wif == nil {
		return InvalidKeyError.Errorf("empty btc wif")
	} else if bt.wif.PrivKey == nil {
		return InvalidKeyError.Errorf("empty btc wif.PrivKey")
	}

	return nil
}

func (bt BTCPrivatekey) Publickey() BTCPublickey {
	return BTCPublickey{pk: bt.wif.PrivKey.PubKey()}
}

func (bt BTCPrivatekey) Sign(input []byte) (Signature, error) {
	sig, err := bt.wif.PrivKey.Sign(chainhash.DoubleHashB(input))
	if err != nil {
		return nil, err
	}

	return Signature(sig.Serialize()), nil
}

// BTCPublickey is the signer key carried by proposals and blind votes.
type BTCPublickey struct {
	pk *btcec.PublicKey
}

func NewBTCPublickeyFromBytes(b []byte) (BTCPublickey, error) {
	if len(b) < 1 {
		return BTCPublickey{}, nil
	}

	pk, err := btcec.ParsePubKey(b, btcec.S256())
	if err != nil {
		return BTCPublickey{}, InvalidKeyError.Wrap(err)
	}

	return BTCPublickey{pk: pk}, nil
}

func NewBTCPublickeyFromString(s string) (BTCPublickey, error) {
	return NewBTCPublickeyFromBytes(base58.Decode(s))
}

func (bt BTCPublickey) IsEmpty() bool {
	return bt.pk == nil
}

func (bt BTCPublickey) IsValid([]byte) error {
	if bt.pk == nil {
		return InvalidKeyError.Errorf("empty btc PublicKey")
	}

	return nil
}

// Bytes returns the compressed form; it is used for hashing, so it must not
// change between versions.
func (bt BTCPublickey) Bytes() []byte {
	if bt.pk == nil {
		return nil
	}

	return bt.pk.SerializeCompressed()
}

func (bt BTCPublickey) String() string {
	return base58.Encode(bt.Bytes())
}

func (bt BTCPublickey) Equal(b BTCPublickey) bool {
	return bytes.Equal(bt.Bytes(), b.Bytes())
}

func (bt BTCPublickey) Verify(input []byte, sig Signature) error {
	if err := bt.IsValid(nil); err != nil {
		return err
	}

	signature, err := btcec.ParseSignature(sig, btcec.S256())
	if err != nil {
		return SignatureVerificationFailedError.Wrap(err)
	}

	if !signature.Verify(chainhash.DoubleHashB(input), bt.pk) {
		return SignatureVerificationFailedError.Call()
	}

	return nil
}
