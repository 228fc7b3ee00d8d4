// Package extcrypto provides hashing and identifier functions for golox
// scripts. All functions use only the Go standard library.
//
// MD5 and SHA-1 are provided for fingerprinting only.
package extcrypto

import (
	"context"
	"crypto/hmac"
	"crypto/md5" //nolint:gosec // fingerprinting only
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // fingerprinting only
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/sandrolain/golox/pkg/ext/extutil"
	"github.com/sandrolain/golox/pkg/functions"
	"github.com/sandrolain/golox/pkg/types"
)

// All returns all crypto function definitions.
func All() []functions.NativeDef {
	return []functions.NativeDef{
		UUID(),
		Hash(),
		HMAC(),
	}
}

// UUID returns the definition for uuid(): a random version 4 UUID string.
func UUID() functions.NativeDef {
	return functions.NativeDef{
		Name:  "uuid",
		Arity: 0,
		Fn: func(context.Context, []types.Value) (types.Value, error) {
			var b [16]byte
			if _, err := rand.Read(b[:]); err != nil {
				return nil, fmt.Errorf("uuid: %w", err)
			}
			b[6] = (b[6] & 0x0f) | 0x40
			b[8] = (b[8] & 0x3f) | 0x80
			return types.String(fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
				b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])), nil
		},
	}
}

// Hash returns the definition for hash(str, algorithm), a lowercase hex
// digest. Supported algorithms: md5, sha1, sha256, sha384, sha512.
func Hash() functions.NativeDef {
	return functions.NativeDef{
		Name:  "hash",
		Arity: 2,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			str, err := extutil.String("hash", args, 0)
			if err != nil {
				return nil, err
			}
			algorithm, err := extutil.String("hash", args, 1)
			if err != nil {
				return nil, err
			}
			newHash, err := hasher(algorithm)
			if err != nil {
				return nil, fmt.Errorf("hash: %w", err)
			}
			h := newHash()
			h.Write([]byte(str))
			return types.String(hex.EncodeToString(h.Sum(nil))), nil
		},
	}
}

// HMAC returns the definition for hmac(str, key, algorithm), a lowercase hex
// MAC.
func HMAC() functions.NativeDef {
	return functions.NativeDef{
		Name:  "hmac",
		Arity: 3,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			str, err := extutil.String("hmac", args, 0)
			if err != nil {
				return nil, err
			}
			key, err := extutil.String("hmac", args, 1)
			if err != nil {
				return nil, err
			}
			algorithm, err := extutil.String("hmac", args, 2)
			if err != nil {
				return nil, err
			}
			newHash, err := hasher(algorithm)
			if err != nil {
				return nil, fmt.Errorf("hmac: %w", err)
			}
			mac := hmac.New(newHash, []byte(key))
			mac.Write([]byte(str))
			return types.String(hex.EncodeToString(mac.Sum(nil))), nil
		},
	}
}

func hasher(algorithm string) (func() hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "md5":
		return md5.New, nil //nolint:gosec
	case "sha1":
		return sha1.New, nil //nolint:gosec
	case "sha256":
		return sha256.New, nil
	case "sha384":
		return sha512.New384, nil
	case "sha512":
		return sha512.New, nil
	}
	return nil, fmt.Errorf("unsupported algorithm %q; use md5, sha1, sha256, sha384, or sha512", algorithm)
}
