package consensus

import "fmt"

// ErrorCode is a stable, wire-stable identifier for a header validation
// outcome. Values mirror the return codes in the chain engine's contract.
type ErrorCode string

const (
	EBadArgs         ErrorCode = "EBADARGS"
	ENoMem           ErrorCode = "ENOMEM"
	ETimeTooNew      ErrorCode = "ETIMETOONEW"
	ETimeTooOld      ErrorCode = "ETIMETOOOLD"
	EDuplicate       ErrorCode = "EDUPLICATE"
	EDuplicateOrphan ErrorCode = "EDUPLICATEORPHAN"
	EBadDiffBits     ErrorCode = "EBADDIFFBITS"
	EPowInvalid      ErrorCode = "EPOWINVALID"
	EUnknownAncestor ErrorCode = "EUNKNOWNANCESTOR"
)

// ChainError carries a stable code plus a human-readable reason.
type ChainError struct {
	Code ErrorCode
	Msg  string
}

func (e *ChainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func chainerr(code ErrorCode, msg string) error {
	return &ChainError{Code: code, Msg: msg}
}

// CodeOf extracts the ErrorCode from err, or "" if err isn't a *ChainError.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if ce, ok := err.(*ChainError); ok {
		return ce.Code
	}
	return ""
}
