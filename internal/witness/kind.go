package witness

import (
	"fmt"
	"strings"
)

// Kind selects the signed message layout of a witness. The values are the wire tags.
type Kind uint8

const (
	KindLegacyUtxo Kind = iota
	KindUtxo
	KindAccount
)

var kindNames = map[Kind]string{
	KindLegacyUtxo: "legacy-utxo",
	KindUtxo:       "utxo",
	KindAccount:    "account",
}

// ParseKind returns the kind for its textual name.
func ParseKind(value string) (Kind, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for kind, name := range kindNames {
		if name == value {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, value)
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// UnmarshalFlag implements flags.Unmarshaler.
func (k *Kind) UnmarshalFlag(value string) error {
	parsed, err := ParseKind(value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalFlag implements flags.Marshaler.
func (k Kind) MarshalFlag() (string, error) {
	return k.String(), nil
}
