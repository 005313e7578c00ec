package txbuilder

import (
	"encoding/json"
	"fmt"
)

// SignedTx is a transaction body with its witnesses, ready for submission.
type SignedTx struct {
	Body      json.RawMessage `json:"body"`
	Witnesses []Witness       `json:"witnesses"`
}

// Witness pairs a signer's verification key hash with its signature over
// the transaction body.
type Witness struct {
	VkeyHash  string `json:"vkey_hash"`
	Signature []byte `json:"signature"`
}

// Sign serializes the transaction and attaches one witness per signer.
// Every hash listed in RequiredSigners must be covered.
func Sign(tx *Tx, signers ...Signer) ([]byte, error) {
	body, err := tx.Bytes()
	if err != nil {
		return nil, err
	}

	provided := make(map[string]bool, len(signers))
	signed := SignedTx{Body: body}
	for _, s := range signers {
		sig, err := s.Sign(body)
		if err != nil {
			return nil, fmt.Errorf("sign with %s: %w", s.VkeyHash(), err)
		}
		signed.Witnesses = append(signed.Witnesses, Witness{VkeyHash: s.VkeyHash(), Signature: sig})
		provided[s.VkeyHash()] = true
	}
	for _, required := range tx.RequiredSigners {
		if !provided[required] {
			return nil, fmt.Errorf("missing witness for required signer %s", required)
		}
	}

	raw, err := json.Marshal(signed)
	if err != nil {
		return nil, fmt.Errorf("serialize signed transaction: %w", err)
	}
	return raw, nil
}
