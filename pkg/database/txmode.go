package database

import (
	"strings"

	"github.com/pkg/errors"
)

// TxMode controls whether scripts are wrapped in a transaction.
type TxMode string

const (
	// TxModeAuto wraps scripts in a transaction unless they contain their own
	// transaction control statements.
	TxModeAuto TxMode = "auto"

	// TxModeAlways wraps every script in a transaction.
	TxModeAlways TxMode = "always"

	// TxModeNever executes scripts as-is on a single connection.
	TxModeNever TxMode = "never"
)

// ErrInvalidTxMode is returned by ParseTxMode for unknown modes.
var ErrInvalidTxMode = errors.New("invalid transaction mode")

// ParseTxMode parses a transaction mode name. An empty string means auto.
func ParseTxMode(s string) (TxMode, error) {
	switch mode := TxMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return TxModeAuto, nil
	case TxModeAuto, TxModeAlways, TxModeNever:
		return mode, nil
	}

	return "", errors.Wrapf(ErrInvalidTxMode, "%q (expected auto, always or never)", s)
}

func (m TxMode) String() string {
	return string(m)
}
